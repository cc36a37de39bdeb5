package ingest

// ChunkText splits text into consecutive chunks of up to size runes each.
// Boundaries fall between runes, never inside a multi-byte character, so
// chunks never overlap and their concatenation reproduces the input exactly.
// A non-positive size returns the whole text as a single chunk.
func ChunkText(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
