package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

func TestMain(m *testing.M) {
	if err := logx.Init(logx.Config{Level: "error", ConsoleOnly: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestWordsToStrength(t *testing.T) {
	is := is.New(t)

	for words, strength := range map[int]int{
		12: 128, 15: 160, 18: 192, 21: 224, 24: 256,
	} {
		got, err := wordsToStrength(words)
		is.NoErr(err)
		is.Equal(got, strength)
	}

	for _, words := range []int{0, 11, 13, 16, 25} {
		_, err := wordsToStrength(words)
		is.True(err != nil)
	}
}

func TestLoadMnemonic_FromFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "mn.txt")
	is.NoErr(os.WriteFile(path, []byte("  abandon ability able  \n"), 0o600))

	mn, err := loadMnemonic("", path)
	is.NoErr(err)
	is.Equal(mn, "abandon ability able")
}

func TestLoadMnemonic_FlagWins(t *testing.T) {
	is := is.New(t)

	mn, err := loadMnemonic("word list here", "")
	is.NoErr(err)
	is.Equal(mn, "word list here")
}

func TestRootCommandWiring(t *testing.T) {
	is := is.New(t)

	root := NewRootCmd(appcfg.Default())
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"generate", "key", "derive", "addresses",
		"check", "check-multi", "check-blockchain",
		"verify", "encrypt", "decrypt",
	} {
		is.True(names[want])
	}
}

func TestKeyCommand(t *testing.T) {
	is := is.New(t)

	root := NewRootCmd(appcfg.Default())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"key", "-n", "2"})
	is.NoErr(root.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 3) // header + 2 keys
	is.Equal(lines[0], "private_hex\twif\taddress")
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		is.Equal(len(fields), 3)
		is.Equal(len(fields[0]), 64)
		is.True(strings.HasPrefix(fields[2], "1"))
	}
}

func TestKeyCommand_RejectsZeroCount(t *testing.T) {
	is := is.New(t)

	root := NewRootCmd(appcfg.Default())
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"key", "-n", "0"})
	is.True(root.Execute() != nil)
}
