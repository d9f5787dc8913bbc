/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package ingest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// LoadMySQL reads every (x, z) row from table over dsn and feeds it to sink,
// for deployments where the external point producer writes into a staging
// database table instead of a file. The tiering estimate (tier.EstimatePointCount)
// is byte-size based and has no meaning for this source; cli.Main still
// derives it from the size of the input path the wizard was given.
func LoadMySQL(ctx context.Context, dsn, table string, sink func(x, z int32)) (count int64, err error) {
	return loadSQLRows(ctx, "mysql", dsn, table, sink)
}

// LoadPostgres is LoadMySQL's twin against a Postgres source, using the same
// func(x, z) sink contract everything downstream (grid, enumerate) is
// agnostic to.
func LoadPostgres(ctx context.Context, dsn, table string, sink func(x, z int32)) (count int64, err error) {
	return loadSQLRows(ctx, "postgres", dsn, table, sink)
}

func loadSQLRows(ctx context.Context, driver, dsn, table string, sink func(x, z int32)) (count int64, err error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT x, z FROM %s", table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var x, z int32
		if err := rows.Scan(&x, &z); err != nil {
			return count, err
		}
		sink(x, z)
		count++
	}
	return count, rows.Err()
}
