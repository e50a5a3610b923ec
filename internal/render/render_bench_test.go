package render

import "testing"

var benchmarkReply = "You asked: \"Explain quantum computing in simple terms\".\n\n" +
	"A **qubit** can be `0`, `1`, or a blend of both.\n\n" +
	"```go\n" +
	"func main() {\n" +
	"    fmt.Println(\"superposition\")\n" +
	"}\n" +
	"```\n\n" +
	"- superposition\n" +
	"- entanglement\n" +
	"- interference\n"

func BenchmarkReplyPooled(b *testing.B) {
	opts := DefaultOptions()
	Reply(benchmarkReply, opts, 80)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Reply(benchmarkReply, opts, 80)
	}
}

func BenchmarkReplyParallel(b *testing.B) {
	opts := DefaultOptions()
	Reply(benchmarkReply, opts, 80)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Reply(benchmarkReply, opts, 80)
		}
	})
}
