package core

import (
	"bufio"
	"io"
	"iter"
)

// Lines yields r split after every newline. Each line keeps its "\n"; the
// final line may lack one. An empty reader yields nothing.
//
// Each yielded slice is freshly allocated and may be retained.
func Lines(r io.Reader) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 {
				if !yield(line, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}
