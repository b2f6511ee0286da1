// Package services implements the driving port interfaces.
// Services contain the core business logic - extraction orchestration,
// similarity matching, gap analysis and batch comparison - and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external infrastructure dependencies.
package services
