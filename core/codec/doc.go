// Package codec decodes request bodies and encodes response bodies by media type.
//
// The JSON, YAML, XML and URL-encoded form codecs share the same options:
// Strict rejects unknown fields, MaxSize caps the body size and Sanitize
// strips control characters from decoded strings. Default registers all four
// with JSON as the fallback for bodies without a Content-Type:
//
//	dec := codec.NewDecoder(codec.Default(codec.MaxSize(64<<10)), advice.Lookup(components))
//	if err := dec.Decode(ctx, r.Header.Get("Content-Type"), body, &payload); err != nil {
//		if errors.Is(err, codec.ErrUnsupportedMediaType) { ... }
//		if errors.Is(err, codec.ErrDecode) { ... }
//	}
//
// Decoder and Encoder run the body advice chain around each codec call.
package codec
