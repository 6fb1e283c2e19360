package store

import "strings"

// whereClause appends the QueryOpts filters to conds and renders the
// WHERE, ORDER and LIMIT tail of an event query. Events come newest first.
func whereClause(conds []string, args []any, opts QueryOpts) (string, []any) {
	if opts.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, formatTime(opts.From))
	}
	if !opts.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, formatTime(opts.To))
	}

	var b strings.Builder
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY sequence DESC")
	if opts.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}
	return b.String(), args
}
