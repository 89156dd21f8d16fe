package source

import (
	"context"

	"github.com/netxfw/rxparse/internal/parser"
)

type collectSink struct {
	records   []parser.Record
	finalized bool
}

func (s *collectSink) Accept(_ context.Context, rec parser.Record) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *collectSink) Finalize(context.Context) error {
	s.finalized = true
	return nil
}
