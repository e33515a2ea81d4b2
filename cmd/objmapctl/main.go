// Command objmapctl inspects an objmap database: it lists the tables in
// the file and their row counts.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"objmap/internal/config"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	cfgPath := flag.String("config", "", "config file path (overrides lookup)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		cfg  *config.Config
		from string
		err  error
	)
	if *cfgPath != "" {
		cfg, from, err = config.LoadFromPath(*cfgPath)
	} else {
		cfg, from, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if from != "" {
		log.Printf("Config loaded: %s", from)
	}

	path := cfg.Database.Path
	if *dbPath != "" {
		path = *dbPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	tables, err := listTables(db)
	if err != nil {
		log.Fatalf("Failed to list tables: %v", err)
	}
	if len(tables) == 0 {
		fmt.Println("no tables")
		return
	}

	for _, table := range tables {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Fatalf("Failed to count rows in %s: %v", table, err)
		}
		fmt.Printf("%s\t%d\n", table, count)
	}
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
