package workload

import (
	"bytes"
	"context"
	"testing"

	"github.com/joshuapare/arenakit/alloc"
)

func BenchmarkReplay(b *testing.B) {
	tr := Generate(GenerateConfig{Seed: 1, Ops: 10_000, MaxSize: 2048, FreeAll: true})
	for _, p := range []alloc.Profile{alloc.ProfileFast, alloc.ProfilePrecise} {
		b.Run(p.Name, func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				a, err := alloc.New(alloc.Config{Capacity: 32 << 20, Profile: &p})
				if err != nil {
					b.Fatal(err)
				}
				if _, err := Replay(context.Background(), a, tr, ReplayOptions{}); err != nil {
					b.Fatal(err)
				}
				a.Close()
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	tr := Generate(GenerateConfig{Seed: 1, Ops: 10_000, MaxSize: 2048})
	var w bytes.Buffer
	if err := tr.Write(&w); err != nil {
		b.Fatal(err)
	}
	buf := w.Bytes()

	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()
	for range b.N {
		if _, err := ParseBytes(buf); err != nil {
			b.Fatal(err)
		}
	}
}
