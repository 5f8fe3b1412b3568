// Package queue defines the work queue views staff poll for.
//
// Each (role, view) pair maps to a Criteria value. The criteria are plain data;
// the work queue query handler is the only place that turns them into a filter,
// by translating them into SQL.
package queue
