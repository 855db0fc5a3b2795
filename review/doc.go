// Package review classifies the review status of items and aggregates
// groups of items (all questions tied to one lesson or card) into a
// single composite status for display and sorting.
//
// Classification is pure: a due date and a reference time map to an
// urgency Status, a mastery figure maps to a Tier, and the two combine
// into a priority score. Aggregate folds many items into one Summary,
// applying the group-level due-date override and the visual mastery
// decay between completed study cycles.
package review
