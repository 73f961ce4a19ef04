// Package secret holds credential material that must not outlive its use.
//
// A String owns its byte buffer exclusively. Formatting it with any fmt verb,
// or serializing it to JSON or YAML, yields one '*' per byte instead of the
// value. Release overwrites the buffer in place with DefaultPad; callers pair
// every constructor with a deferred Release so the wipe runs on every exit path:
//
//	s := secret.New(buf)
//	defer s.Release()
//
//	s.Expose(func(b []byte) {
//	    // use b, do not keep it
//	})
//
// The mask length follows the byte length, not the number of visible
// characters: "pässword" masks to nine characters.
package secret
