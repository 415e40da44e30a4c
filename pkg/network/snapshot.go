package network

import (
	"bytes"
	"io"
	"os"

	"github.com/kelindar/binary"
	"github.com/klauspost/compress/zstd"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/pkg/errors"
)

type networkSnapshot struct {
	Roads         []datastructure.Road
	Intersections []datastructure.Intersection
}

func compressData(inData []byte, bbufOut *bytes.Buffer) error {
	encoder, err := zstd.NewWriter(bbufOut, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return errors.Wrap(err, "failed to create zstd encoder")
	}

	_, err = io.Copy(encoder, bytes.NewReader(inData))
	if err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

func decompressData(inData []byte, out io.Writer) error {
	d, err := zstd.NewReader(bytes.NewReader(inData))
	if err != nil {
		return errors.Wrap(err, "failed to create zstd decoder")
	}
	defer d.Close()

	_, err = io.Copy(out, d)
	return err
}

// Encode writes the network as kelindar/binary compressed with zstd.
func (n *RoadNetwork) Encode(w io.Writer) error {
	bb, err := binary.Marshal(networkSnapshot{
		Roads:         n.roads,
		Intersections: n.intersections,
	})
	if err != nil {
		return errors.Wrap(err, "marshal network snapshot")
	}

	var buf bytes.Buffer
	if err := compressData(bb, &buf); err != nil {
		return errors.Wrap(err, "compress network snapshot")
	}
	_, err = w.Write(buf.Bytes())
	return errors.Wrap(err, "write network snapshot")
}

func Decode(r io.Reader) (*RoadNetwork, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read network snapshot")
	}

	var buf bytes.Buffer
	if err := decompressData(compressed, &buf); err != nil {
		return nil, errors.Wrap(err, "decompress network snapshot")
	}

	var snap networkSnapshot
	if err := binary.Unmarshal(buf.Bytes(), &snap); err != nil {
		return nil, errors.Wrap(err, "unmarshal network snapshot")
	}

	rn, err := newRoadNetwork(snap.Roads, snap.Intersections)
	if err != nil {
		return nil, errors.Wrap(err, "invalid network snapshot")
	}
	return rn, nil
}

func (n *RoadNetwork) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	return n.Encode(f)
}

func LoadFromFile(path string) (*RoadNetwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}
