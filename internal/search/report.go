package search

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Reporter writes a found point.
type Reporter interface {
	Report(res *Result) error
}

// NewReporter returns the reporter for format. withPubKey adds the SEC1
// encodings of the point.
func NewReporter(format Format, w io.Writer, withPubKey bool) (Reporter, error) {
	switch format {
	case FormatText:
		return &textReporter{w: w, pubKey: withPubKey}, nil
	case FormatJSON:
		return &jsonReporter{w: w, pubKey: withPubKey}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

type textReporter struct {
	w      io.Writer
	pubKey bool
}

func (r *textReporter) Report(res *Result) error {
	lines := []string{
		"Found it!",
		"x is " + hexutil.EncodeBig(res.Point.X),
		"y is " + hexutil.EncodeBig(res.Point.Y),
	}
	if r.pubKey {
		keys, err := pubKeys(res)
		if err != nil {
			return err
		}
		lines = append(lines,
			"uncompressed pubkey is "+keys.uncompressed,
			"compressed pubkey is "+keys.compressed,
			"extended pubkey is "+keys.extended)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(r.w, l); err != nil {
			return errors.Wrap(err, "write result")
		}
	}
	return nil
}

type jsonResult struct {
	Start        string `json:"start"`
	X            string `json:"x"`
	Y            string `json:"y"`
	Iterations   uint64 `json:"iterations"`
	Backend      string `json:"backend"`
	Uncompressed string `json:"uncompressedPubKey,omitempty"`
	Compressed   string `json:"compressedPubKey,omitempty"`
	Extended     string `json:"extendedPubKey,omitempty"`
}

type jsonReporter struct {
	w      io.Writer
	pubKey bool
}

func (r *jsonReporter) Report(res *Result) error {
	out := jsonResult{
		Start:      hexutil.EncodeBig(res.Start),
		X:          hexutil.EncodeBig(res.Point.X),
		Y:          hexutil.EncodeBig(res.Point.Y),
		Iterations: res.Iterations,
		Backend:    res.Backend,
	}
	if r.pubKey {
		keys, err := pubKeys(res)
		if err != nil {
			return err
		}
		out.Uncompressed, out.Compressed, out.Extended = keys.uncompressed, keys.compressed, keys.extended
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encode result")
}

type tagKeys struct {
	uncompressed, compressed, extended string
}

func pubKeys(res *Result) (*tagKeys, error) {
	pk, err := res.Point.PubKey()
	if err != nil {
		return nil, errors.Wrap(err, "tag point is not a valid public key")
	}
	chainCode, err := hex.DecodeString(TagChainCode)
	if err != nil {
		return nil, errors.Wrap(err, "decode chain code")
	}
	xpub, err := res.Point.ExtendedKey(chainCode)
	if err != nil {
		return nil, errors.Wrap(err, "tag extended key")
	}
	return &tagKeys{
		uncompressed: hex.EncodeToString(pk.SerializeUncompressed()),
		compressed:   hex.EncodeToString(pk.SerializeCompressed()),
		extended:     xpub.String(),
	}, nil
}
