// Package models defines the records the planner persists.
//
// # Models
//
//   - Debt: a named liability with its balance, rate, term and installment
//   - Settings: the chosen payoff strategy and the monthly extra contribution
//
// Debts are identified by small integers assigned as max(existing)+1, so ids
// stay stable across saves and are never reused while the debt exists.
//
// The simulation works on its own copy of these records; see the calculator
// package. Nothing here knows how a plan is computed.
package models
