package inputs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractAddresses_HeaderedCSV(t *testing.T) {
	is := is.New(t)

	path := writeTemp(t, "hex_private_key,wif_private_key,bitcoin_address\n"+
		"aa,bb,1Addr1\n"+
		"cc,dd,1Addr2\n"+
		"ee,ff,1Addr1\n"+ // duplicate
		"gg,hh,\n") // empty address skipped

	addrs, err := ExtractAddresses(path)
	is.NoErr(err)
	is.Equal(addrs, []string{"1Addr1", "1Addr2"})
}

func TestExtractAddresses_PositionalCSV(t *testing.T) {
	is := is.New(t)

	path := writeTemp(t, "aa,bb,1Third\ncc,dd,ee,1NotThis\n1Single\n")
	addrs, err := ExtractAddresses(path)
	is.NoErr(err)
	// third column of wide rows, sole column of single-column rows
	is.Equal(addrs, []string{"1Third", "ee", "1Single"})
}

func TestExtractAddresses_PlainAddressList(t *testing.T) {
	is := is.New(t)

	path := writeTemp(t, "1Addr1\n1Addr2\n1Addr1\n")
	addrs, err := ExtractAddresses(path)
	is.NoErr(err)
	is.Equal(addrs, []string{"1Addr1", "1Addr2"})
}

func TestExtractAddresses_SkipsMalformedRow(t *testing.T) {
	is := is.New(t)

	// a stray quote mid-file must not drop the rows after it
	path := writeTemp(t, "aa,bb,1Addr1\ncc,d\"d,1Bad\nee,ff,1Addr2\n")
	addrs, err := ExtractAddresses(path)
	is.NoErr(err)
	is.Equal(addrs, []string{"1Addr1", "1Addr2"})
}

func TestExtractAddresses_MissingFile(t *testing.T) {
	is := is.New(t)

	_, err := ExtractAddresses(filepath.Join(t.TempDir(), "nope.csv"))
	is.True(err != nil)
}

func TestReadSecrets_SkipsCommentsAndBlanks(t *testing.T) {
	is := is.New(t)

	path := writeTemp(t, "# header comment\n\nsecret-one\n  secret-two  \n#skip\n")
	secrets, err := ReadSecrets(path)
	is.NoErr(err)
	is.Equal(secrets, []string{"secret-one", "secret-two"})
}

func TestReadLines_KeepsHashLines(t *testing.T) {
	is := is.New(t)

	path := writeTemp(t, "#not-a-comment-here\nline\n")
	lines, err := ReadLines(path)
	is.NoErr(err)
	is.Equal(lines, []string{"#not-a-comment-here", "line"})
}

func TestWriteLines_RoundTrip(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "out.txt")
	is.NoErr(WriteLines(path, []string{"a", "b", "c"}))

	lines, err := ReadLines(path)
	is.NoErr(err)
	is.Equal(lines, []string{"a", "b", "c"})
}
