package compress

import (
	"fmt"
	"testing"
)

func BenchmarkCodecs_Compress(b *testing.B) {
	for _, records := range []int{16, 256, 4096} {
		data := jsonPayload(records)
		for name, codec := range getAllCodecs() {
			b.Run(fmt.Sprintf("%s/%dKB", name, len(data)/1024), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := codec.Compress(data); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCodecs_Decompress(b *testing.B) {
	for _, records := range []int{16, 256, 4096} {
		data := jsonPayload(records)
		for name, codec := range getAllCodecs() {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/%dKB", name, len(data)/1024), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := codec.Decompress(compressed); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
