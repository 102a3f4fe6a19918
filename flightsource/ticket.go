package flightsource

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// TicketData identifies what to fetch from a remote Flight dataset server.
// Tickets are opaque byte slices on the wire, MessagePack-encoded.
type TicketData struct {
	// Dataset is the remote dataset name.
	Dataset string `msgpack:"dataset"`

	// SQL optionally narrows the fetch to a query the remote executes.
	// Empty means the full dataset.
	SQL string `msgpack:"sql,omitempty"`

	// Columns to project (optional, nil means all columns).
	Columns []string `msgpack:"columns,omitempty"`
}

// EncodeTicket serializes ticket data into an opaque ticket.
func EncodeTicket(data TicketData) ([]byte, error) {
	if data.Dataset == "" {
		return nil, fmt.Errorf("dataset name cannot be empty")
	}
	encoded, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket: %w", err)
	}
	return encoded, nil
}

// DecodeTicket parses an opaque ticket.
func DecodeTicket(ticket []byte) (*TicketData, error) {
	if len(ticket) == 0 {
		return nil, fmt.Errorf("ticket cannot be empty")
	}
	var data TicketData
	if err := msgpack.Unmarshal(ticket, &data); err != nil {
		return nil, fmt.Errorf("failed to decode ticket: %w", err)
	}
	if data.Dataset == "" {
		return nil, fmt.Errorf("decoded ticket has empty dataset name")
	}
	return &data, nil
}
