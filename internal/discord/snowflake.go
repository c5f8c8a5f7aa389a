package discord

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-faster/jx"
)

// Discord epoch, milliseconds since unix epoch (2015-01-01T00:00:00Z).
const discordEpoch = 1420070400000

// Snowflake is a 64-bit time-ordered identifier used for every discord
// entity. The API serves snowflakes as decimal strings, older payloads
// as plain numbers; both decode, encoding always emits the string form.
type Snowflake uint64

func ParseSnowflake(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse snowflake %q: %w", s, err)
	}
	return Snowflake(v), nil
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Time returns the creation instant encoded in the timestamp bits.
func (s Snowflake) Time() time.Time {
	return time.UnixMilli(int64(s>>22) + discordEpoch).UTC()
}

func (s Snowflake) Encode(e *jx.Encoder) {
	e.Str(s.String())
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

func (s *Snowflake) Decode(d *jx.Decoder) error {
	v, err := decodeSnowflake(d)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s *Snowflake) UnmarshalJSON(data []byte) error {
	return s.Decode(jx.DecodeBytes(data))
}

func decodeSnowflake(d *jx.Decoder) (Snowflake, error) {
	switch tt := d.Next(); tt {
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return 0, fmt.Errorf("read snowflake: %w", err)
		}
		return ParseSnowflake(v)
	case jx.Number:
		raw, err := d.Raw()
		if err != nil {
			return 0, fmt.Errorf("read snowflake: %w", err)
		}
		return ParseSnowflake(raw.String())
	default:
		return 0, fmt.Errorf("snowflake must be a string or number, got %s", tt)
	}
}
