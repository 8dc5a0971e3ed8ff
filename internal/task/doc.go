// Package task defines the task records tracked by taskdeck and the
// collection envelope persisted to disk.
//
// The tasks file format (tasks.json) follows the embedded JSON Schema:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "id": "d1k2h3j4l5m6n7o8p9q0",
//	      "description": "Buy milk",
//	      "status": "todo",
//	      "created_at": "2024-01-01T00:00:00Z",
//	      "updated_at": "2024-01-01T00:00:00Z"
//	    }
//	  ]
//	}
//
// # Validation
//
// Loaded collections are validated against the embedded JSON Schema
// (draft-07). If schema compilation is unavailable for any reason, minimal
// structural checks cover the same ground: schema_version, tasks presence,
// and per-task id, description, and status.
//
// # Task Status Values
//
//   - "todo": task is pending
//   - "in-progress": task is currently being worked on
//   - "done": task is complete
//
// Any status may transition to any other; done tasks may be reopened.
//
// # File Format
//
// When writing tasks files, callers use:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package task
