// Package riskapi is the client for the transaction risk analysis backend.
// It issues a single JSON POST per transaction and decodes the returned
// assessment into display-ready values without trusting the server's types.
package riskapi
