package router

import (
	"encoding/json"
	"fmt"
	"time"
)

// unixSeconds converts a fractional Unix timestamp, as used on the wire,
// back into a time.Time.
func unixSeconds(secs float64) time.Time {
	whole := int64(secs)
	frac := secs - float64(whole)
	return time.Unix(whole, int64(frac*1e9))
}

// wireRoute mirrors Route but keeps LastUpdated as a Unix-epoch float
// ({"cost":0,"next_hop":"...","last_updated":1700000000.0}) instead of
// RFC 3339, since every peer speaking this protocol expects epoch seconds.
type wireRoute struct {
	Cost        *float64 `json:"cost"`
	NextHop     *string  `json:"next_hop"`
	LastUpdated float64  `json:"last_updated"`
}

// Encode serializes a table snapshot into the wire format: a single JSON
// object mapping endpoint strings to route records.
func Encode(routes map[Endpoint]Route) ([]byte, error) {
	out := make(map[string]wireRoute, len(routes))
	for ep, r := range routes {
		cost := r.Cost
		nextHop := string(r.NextHop)
		out[string(ep)] = wireRoute{
			Cost:        &cost,
			NextHop:     &nextHop,
			LastUpdated: float64(r.LastUpdated.UnixNano()) / 1e9,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}
	return data, nil
}

// Decode parses one datagram payload into advertised routes.
// Unknown fields are ignored by encoding/json automatically. Records
// missing cost or next_hop are dropped rather than failing the whole
// decode, since one malformed entry in an otherwise valid table should
// not discard the rest.
func Decode(data []byte) (map[Endpoint]Route, error) {
	var raw map[string]wireRoute
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}

	out := make(map[Endpoint]Route, len(raw))
	for ep, wr := range raw {
		if wr.Cost == nil || wr.NextHop == nil {
			continue
		}
		out[Endpoint(ep)] = Route{
			Cost:        *wr.Cost,
			NextHop:     Endpoint(*wr.NextHop),
			LastUpdated: unixSeconds(wr.LastUpdated),
		}
	}
	return out, nil
}
