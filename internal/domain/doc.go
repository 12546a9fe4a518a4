// Package domain contains the core data model shared by the roster,
// gradebook, standing, and report packages.
//
// The central types are:
//
// Term: a spring/fall academic term token (SP2024, FS2024) with a total
// ordering used everywhere history is walked.
//
// Member and MemberKey: a chapter member and the normalized name identity
// used to reconcile roster rows with grade report rows.
//
// CourseRecord and TermSummary: one parsed grade report row, and the
// per-member per-term aggregate derived from those rows.
package domain
