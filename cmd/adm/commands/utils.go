package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
)

// maskDatabaseURL hides credentials in a connection URL or key=value DSN for display.
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		if u.User == nil {
			return raw
		}
		return u.Scheme + "://***:***@" + u.Host + u.RequestURI()
	}
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		return "postgres://***:***@" + raw[i+1:]
	}

	fields := strings.Fields(raw)
	for i, field := range fields {
		if strings.HasPrefix(field, "password=") {
			fields[i] = "password=***"
		}
	}
	return strings.Join(fields, " ")
}

// getDatabaseInfo returns database connection information
func getDatabaseInfo(ctx context.Context, db *sql.DB) string {
	if db == nil {
		return "Not connected"
	}

	var dbName string
	if err := db.QueryRowContext(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		return "Connected (unknown database)"
	}

	var host sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT inet_server_addr()::text").Scan(&host); err != nil || !host.Valid {
		return fmt.Sprintf("Connected to %s", dbName)
	}

	return fmt.Sprintf("Connected to %s on %s", dbName, host.String)
}
