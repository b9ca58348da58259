package generator

// Format selects the output layout.
type Format string

const (
	// FormatText writes one block per mnemonic:
	//   <mnemonic>\nBTC: <addr> | <priv>\nETH: <addr> | <priv>\n---
	FormatText Format = "text"
	// FormatTSV writes a mnemonic\tprivate_hex\twif\taddress header and one
	// BTC row per mnemonic.
	FormatTSV Format = "tsv"
)

type Options struct {
	Count         int    // mnemonics to generate
	WordsStrength int    // entropy bits, 128 = 12 words
	Passphrase    string // BIP39 passphrase (not encryption)
	Format        Format
	OutPath       string

	// Encrypt writes a geth keystore JSON per ETH key to <OutPath>.keystore.jsonl.
	Encrypt          bool
	KeystorePassword string

	Workers int
}
