package llm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pkgz/lgr"
)

// maxFrameSize limits a single SSE line
const maxFrameSize = 1024 * 1024

// DeltaFunc extracts the text fragment carried by a single stream frame
type DeltaFunc func(frame []byte) (string, error)

// DecodeStream reads server-sent events from r and accumulates the text fragments returned by extract.
// Lines other than "data:" are ignored, as are [DONE] markers and frames extract can't parse.
// onProgress, if set, receives the accumulated text after every non-empty fragment.
func DecodeStream(r io.Reader, extract DeltaFunc, onProgress func(string)) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	var acc strings.Builder
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		payload := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
		if len(payload) == 0 || bytes.Equal(payload, []byte("[DONE]")) {
			continue
		}

		delta, err := extract(payload)
		if err != nil {
			lgr.Printf("[DEBUG] skip stream frame: %v", err)
			continue
		}
		if delta == "" {
			continue
		}
		acc.WriteString(delta)
		if onProgress != nil {
			onProgress(acc.String())
		}
	}
	if err := scanner.Err(); err != nil {
		return acc.String(), &TransportError{Err: fmt.Errorf("read stream: %w", err)}
	}
	return acc.String(), nil
}
