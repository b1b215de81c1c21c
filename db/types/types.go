package types

// Migration is a single schema step. SQL holds the down statements, then the
// "-- +migrate Up" separator, then the up statements.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}
