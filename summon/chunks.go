package summon

import "iter"

// RenderChunks performs one SSR pass of f and streams the assembled
// output in chunks of chunkSize bytes, the last one possibly shorter
// (spec §6: `render_chunks(f, chunk_size) -> Iterator<String>`). The
// whole output is produced by Render before the first chunk is
// yielded, so the chunks concatenate to exactly what Render returns:
// head elements come where Render places them (at the start), and no
// hydration marker is included. Chunk boundaries are byte offsets and
// may split a multi-byte UTF-8 character.
//
// Go 1.23+'s range-over-func iterators (iter.Seq[string]) are the
// idiomatic shape for a lazy string stream; the pack contains no
// generator/iterator library to reach for instead, so this is one of
// the module's few deliberately-stdlib pieces (iter is part of the
// standard library, not a third-party dependency).
func RenderChunks(f Body, chunkSize int, opts ...Option) iter.Seq[string] {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	full := Render(f, opts...)
	return func(yield func(string) bool) {
		for len(full) > 0 {
			n := chunkSize
			if n > len(full) {
				n = len(full)
			}
			chunk := full[:n]
			full = full[n:]
			if !yield(chunk) {
				return
			}
		}
	}
}
