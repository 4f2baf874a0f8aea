package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"contacthub/internal/filter"
	"contacthub/internal/pipeline"
	"contacthub/internal/report"
	"contacthub/pkg/parser"
)

func main() {
	var (
		in     = flag.String("in", "", "input file (xlsx or csv)")
		out    = flag.String("out", "-", "output CSV path, - for stdout")
		status = flag.String("status", "", "comma-separated Status Follow-Up values to keep")
		note   = flag.String("note", "", "substring match on Keterangan")
		query  = flag.String("q", "", "search across name/phone/email")
		from   = flag.String("from", "", "Last Contact lower bound (YYYY-MM-DD)")
		to     = flag.String("to", "", "Last Contact upper bound (YYYY-MM-DD)")
	)
	flag.Parse()

	if *in == "" {
		log.Fatal("usage: normalize-csv -in contacts.xlsx [-out contacts.csv]")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	raw, warnings, err := parser.Parse(data)
	if err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}
	for _, w := range warnings {
		log.Printf("[parser] row %d: %s", w.Row, w.Message)
	}

	table := pipeline.Normalizer{}.Normalize(*raw)

	crit, err := buildCriteria(*status, *note, *query, *from, *to)
	if err != nil {
		log.Fatalf("bad filter: %v", err)
	}
	filtered := filter.Apply(table, crit)

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := report.WriteCSV(w, filtered); err != nil {
		log.Fatalf("write csv: %v", err)
	}

	log.Printf("normalized %d rows, kept %d after filtering", table.Len(), filtered.Len())
}

func buildCriteria(status, note, query, from, to string) (filter.Criteria, error) {
	var crit filter.Criteria

	for _, s := range strings.Split(status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			crit.Statuses = append(crit.Statuses, s)
		}
	}
	crit.Note = note
	crit.Query = query

	var err error
	if crit.From, err = parseBound(from); err != nil {
		return crit, err
	}
	crit.To, err = parseBound(to)
	return crit, err
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
