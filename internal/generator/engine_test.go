package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"walletkit/internal/mnemonic"
	"walletkit/pkg/logx"
)

func TestMain(m *testing.M) {
	if err := logx.Init(logx.Config{Level: "error", ConsoleOnly: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRun_TSVFormat(t *testing.T) {
	is := is.New(t)

	out := filepath.Join(t.TempDir(), "wallets.tsv")
	err := Run(context.Background(), Options{
		Count:   3,
		Format:  FormatTSV,
		OutPath: out,
		Workers: 2,
	})
	is.NoErr(err)

	data, err := os.ReadFile(out)
	is.NoErr(err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	is.Equal(len(lines), 4) // header + 3 rows
	is.Equal(lines[0], "mnemonic\tprivate_hex\twif\taddress")

	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		is.Equal(len(fields), 4)
		is.True(mnemonic.Validate(fields[0]))
		is.Equal(len(fields[1]), 64) // private hex
		is.True(strings.HasPrefix(fields[3], "1")) // BIP44 legacy address
	}
}

func TestRun_TextFormat(t *testing.T) {
	is := is.New(t)

	out := filepath.Join(t.TempDir(), "wallets.txt")
	err := Run(context.Background(), Options{
		Count:   2,
		OutPath: out,
	})
	is.NoErr(err)

	data, err := os.ReadFile(out)
	is.NoErr(err)
	text := string(data)
	is.Equal(strings.Count(text, "---\n"), 2)
	is.Equal(strings.Count(text, "BTC: "), 2)
	is.Equal(strings.Count(text, "ETH: 0x"), 2)
}

func TestRun_RejectsZeroCount(t *testing.T) {
	is := is.New(t)

	err := Run(context.Background(), Options{
		Count:   0,
		OutPath: filepath.Join(t.TempDir(), "x"),
	})
	is.True(err != nil)
}
