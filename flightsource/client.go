// Package flightsource fetches remote datasets over Arrow Flight.
//
// Some datasets are not local files but tables served by an Arrow Flight
// endpoint. This package reads them into the same Result shape the local
// DuckDB executor produces, so the rest of the viewer does not care where
// rows came from.
package flightsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dataview-lab/dataview-go/query"
	"github.com/dataview-lab/dataview-go/result"
)

// Client is a thin wrapper over a Flight client connection.
type Client struct {
	inner  flight.Client
	logger *slog.Logger
}

// Dial connects to a Flight endpoint. Extra grpc.DialOption values are
// appended after the default insecure transport credentials, so callers
// can override transport security.
func Dial(addr string, logger *slog.Logger, opts ...grpc.DialOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	inner, err := flight.NewClientWithMiddleware(addr, nil, nil, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to flight endpoint %s: %w", addr, err)
	}

	return &Client{inner: inner, logger: logger}, nil
}

// Fetch retrieves the rows the ticket describes and collects them into a
// Result.
func (c *Client) Fetch(ctx context.Context, ticket TicketData) (*query.Result, error) {
	encoded, err := EncodeTicket(ticket)
	if err != nil {
		return nil, err
	}

	stream, err := c.inner.DoGet(ctx, &flight.Ticket{Ticket: encoded})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", ticket.Dataset, err)
	}

	reader, err := flight.NewRecordReader(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read flight stream: %w", err)
	}
	defer reader.Release()

	res := &query.Result{
		Schema: query.SchemaFields(reader.Schema()),
		Rows:   []result.Row{},
	}
	batches := 0
	for reader.Next() {
		res.Rows = query.AppendRows(res.Rows, reader.RecordBatch())
		batches++
	}
	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("flight stream failed: %w", err)
	}

	c.logger.Debug("flight fetch complete",
		"dataset", ticket.Dataset,
		"batches", batches,
		"rows", len(res.Rows),
	)
	return res, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
