package discord

import (
	"fmt"
	"strconv"

	"github.com/go-faster/jx"
	"github.com/rs/zerolog/log"
)

// DuplicateFieldError is returned when a recognized field key appears more
// than once in a wire document.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// MissingFieldError is returned when a required field never appeared.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// DefaultReaction is the emoji a forum channel applies to new posts by
// default. Exactly one of EmojiID and EmojiName is set; the wire format is
// trusted here.
type DefaultReaction struct {
	EmojiID   *Snowflake
	EmojiName *string
}

// ForumTag is a tag applicable to threads in a forum channel. At most one of
// EmojiID and EmojiName is populated. Values are built by decoding a wire
// document and are immutable afterward.
type ForumTag struct {
	EmojiID   *Snowflake
	EmojiName *string
	ID        Snowflake
	Moderated bool
	Name      string // 0-20 characters
}

// UnknownKeyFunc receives every key of a wire document the tag decoder does
// not recognize. Implementations must not block; a nil func discards.
type UnknownKeyFunc func(key string)

// TagDecoder decodes forum tag wire documents. The zero-option decoder traces
// unknown keys through the global logger.
type TagDecoder struct {
	unknownKey UnknownKeyFunc
}

type TagDecoderOption func(*TagDecoder)

// WithUnknownKeyFunc replaces the unknown-key sink. Passing nil silences it.
func WithUnknownKeyFunc(fn UnknownKeyFunc) TagDecoderOption {
	return func(td *TagDecoder) {
		td.unknownKey = fn
	}
}

func NewTagDecoder(opts ...TagDecoderOption) *TagDecoder {
	td := &TagDecoder{
		unknownKey: func(key string) {
			log.Trace().Str("key", key).Msg("unknown forum tag field")
		},
	}
	for _, opt := range opts {
		opt(td)
	}
	return td
}

// Decode consumes one tag object from d, left to right in a single pass.
// Unknown keys are skipped unread and reported to the unknown-key sink.
// A repeated recognized key fails with DuplicateFieldError; after the pass
// the required fields are checked in the order id, moderated, name and the
// first absent one fails with MissingFieldError. No partial tag is returned
// on failure.
func (td *TagDecoder) Decode(d *jx.Decoder) (ForumTag, error) {
	var (
		emojiID       *Snowflake
		seenEmojiID   bool
		emojiName     *string
		seenEmojiName bool
		id            *Snowflake
		moderated     *bool
		name          *string
	)

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "emoji_id":
			if seenEmojiID {
				return &DuplicateFieldError{Field: "emoji_id"}
			}
			seenEmojiID = true
			v, err := resolveEmojiID(d)
			if err != nil {
				return err
			}
			// Zero is the sentinel for unset, not a valid snowflake.
			if v > 0 {
				emojiID = &v
			}
			return nil
		case "emoji_name":
			if seenEmojiName {
				return &DuplicateFieldError{Field: "emoji_name"}
			}
			seenEmojiName = true
			v, err := decodeOptionalStr(d)
			if err != nil {
				return fmt.Errorf("read emoji_name: %w", err)
			}
			emojiName = v
			return nil
		case "id":
			if id != nil {
				return &DuplicateFieldError{Field: "id"}
			}
			v, err := decodeSnowflake(d)
			if err != nil {
				return fmt.Errorf("read id: %w", err)
			}
			id = &v
			return nil
		case "moderated":
			if moderated != nil {
				return &DuplicateFieldError{Field: "moderated"}
			}
			v, err := d.Bool()
			if err != nil {
				return fmt.Errorf("read moderated: %w", err)
			}
			moderated = &v
			return nil
		case "name":
			if name != nil {
				return &DuplicateFieldError{Field: "name"}
			}
			v, err := d.Str()
			if err != nil {
				return fmt.Errorf("read name: %w", err)
			}
			name = &v
			return nil
		default:
			if td.unknownKey != nil {
				td.unknownKey(string(key))
			}
			return d.Skip()
		}
	}); err != nil {
		return ForumTag{}, err
	}

	if id == nil {
		return ForumTag{}, &MissingFieldError{Field: "id"}
	}
	if moderated == nil {
		return ForumTag{}, &MissingFieldError{Field: "moderated"}
	}
	if name == nil {
		return ForumTag{}, &MissingFieldError{Field: "name"}
	}

	return ForumTag{
		EmojiID:   emojiID,
		EmojiName: emojiName,
		ID:        *id,
		Moderated: *moderated,
		Name:      *name,
	}, nil
}

// DecodeAll consumes either a single tag object or an array of them, the two
// document forms the API serves tag collections in.
func (td *TagDecoder) DecodeAll(d *jx.Decoder) ([]ForumTag, error) {
	if d.Next() == jx.Object {
		tag, err := td.Decode(d)
		if err != nil {
			return nil, err
		}
		return []ForumTag{tag}, nil
	}

	var tags []ForumTag
	if err := d.Arr(func(d *jx.Decoder) error {
		tag, err := td.Decode(d)
		if err != nil {
			return err
		}
		tags = append(tags, tag)
		return nil
	}); err != nil {
		return nil, err
	}
	return tags, nil
}

// resolveEmojiID reads an emoji_id value whose wire shape varies across API
// versions. Shapes besides a non-negative integer number and a string of
// digits normalize to zero, which callers treat as absent: compatibility
// with old and future payloads wins over strictness here.
func resolveEmojiID(d *jx.Decoder) (Snowflake, error) {
	switch d.Next() {
	case jx.Number:
		raw, err := d.Raw()
		if err != nil {
			return 0, fmt.Errorf("read emoji_id: %w", err)
		}
		v, err := strconv.ParseUint(raw.String(), 10, 64)
		if err != nil {
			return 0, nil
		}
		return Snowflake(v), nil
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return 0, fmt.Errorf("read emoji_id: %w", err)
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, nil
		}
		return Snowflake(v), nil
	case jx.Null:
		return 0, d.Null()
	default:
		return 0, d.Skip()
	}
}

func decodeOptionalStr(d *jx.Decoder) (*string, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	v, err := d.Str()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t *ForumTag) Decode(d *jx.Decoder) error {
	tag, err := NewTagDecoder().Decode(d)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

func (t *ForumTag) UnmarshalJSON(data []byte) error {
	return t.Decode(jx.DecodeBytes(data))
}

// Encode follows the data model directly, no wire special cases: optionals
// encode as null, snowflakes as strings.
func (t ForumTag) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("emoji_id")
	encodeOptionalSnowflake(e, t.EmojiID)
	e.FieldStart("emoji_name")
	encodeOptionalStr(e, t.EmojiName)
	e.FieldStart("id")
	t.ID.Encode(e)
	e.FieldStart("moderated")
	e.Bool(t.Moderated)
	e.FieldStart("name")
	e.Str(t.Name)
	e.ObjEnd()
}

func (t ForumTag) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	t.Encode(&e)
	return e.Bytes(), nil
}

func (r *DefaultReaction) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "emoji_id":
			if d.Next() == jx.Null {
				r.EmojiID = nil
				return d.Null()
			}
			v, err := decodeSnowflake(d)
			if err != nil {
				return fmt.Errorf("read emoji_id: %w", err)
			}
			r.EmojiID = &v
			return nil
		case "emoji_name":
			v, err := decodeOptionalStr(d)
			if err != nil {
				return fmt.Errorf("read emoji_name: %w", err)
			}
			r.EmojiName = v
			return nil
		default:
			return d.Skip()
		}
	})
}

func (r *DefaultReaction) UnmarshalJSON(data []byte) error {
	return r.Decode(jx.DecodeBytes(data))
}

func (r DefaultReaction) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("emoji_id")
	encodeOptionalSnowflake(e, r.EmojiID)
	e.FieldStart("emoji_name")
	encodeOptionalStr(e, r.EmojiName)
	e.ObjEnd()
}

func (r DefaultReaction) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	r.Encode(&e)
	return e.Bytes(), nil
}

func encodeOptionalSnowflake(e *jx.Encoder, s *Snowflake) {
	if s == nil {
		e.Null()
		return
	}
	s.Encode(e)
}

func encodeOptionalStr(e *jx.Encoder, s *string) {
	if s == nil {
		e.Null()
		return
	}
	e.Str(*s)
}
