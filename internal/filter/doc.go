// Package filter evaluates advanced-search queries against an in-memory
// record set. A query is an ordered list of criteria combined with logical
// AND; evaluation is pure, keeps the input order and never reaches the
// provider. Missing or malformed criterion values widen the match rather
// than narrowing it, so a bad filter over-matches instead of hiding mail.
package filter
