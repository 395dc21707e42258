package bitmap

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

const (
	FileHeaderLen = 14
	InfoHeaderLen = 40
	HeaderLen     = FileHeaderLen + InfoHeaderLen

	BytesPerPixel  = 4
	InchesPerMeter = 39.3700787
)

// FileHeader is the BITMAPFILEHEADER record.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Signature   [2]byte // "BM"
	FileSize    uint32  // headers plus pixel data
	Reserved1   uint16
	Reserved2   uint16
	PixelOffset uint32 // offset of the pixel array from the start of the file
}

// InfoHeader is the 40 byte BITMAPINFOHEADER record.
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32 // positive, rows are stored bottom-up
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// BuildHeaders computes both headers of the 32-bit BMP produced for src.
// Only the dimensions and resolution of src are used.
func BuildHeaders(src *Source) (FileHeader, InfoHeader, error) {
	if err := checkSize(src.Width, src.Height); err != nil {
		return FileHeader{}, InfoHeader{}, err
	}

	if src.Width > math.MaxInt32 || src.Height > math.MaxInt32 {
		return FileHeader{}, InfoHeader{}, errors.Wrapf(ErrSizeOverflow, "dimensions %dx%d", src.Width, src.Height)
	}

	imageSize := uint64(src.Width) * uint64(src.Height) * BytesPerPixel
	if imageSize+HeaderLen > math.MaxUint32 {
		return FileHeader{}, InfoHeader{}, errors.Wrapf(ErrSizeOverflow, "%dx%d needs %d bytes", src.Width, src.Height, imageSize)
	}

	xppm, err := pelsPerMeter(src.DpiX)
	if err != nil {
		return FileHeader{}, InfoHeader{}, errors.Wrap(err, "horizontal resolution")
	}
	yppm, err := pelsPerMeter(src.DpiY)
	if err != nil {
		return FileHeader{}, InfoHeader{}, errors.Wrap(err, "vertical resolution")
	}

	fh := FileHeader{
		Signature:   [2]byte{'B', 'M'},
		FileSize:    uint32(HeaderLen + imageSize),
		PixelOffset: HeaderLen,
	}
	ih := InfoHeader{
		Size:          InfoHeaderLen,
		Width:         int32(src.Width),
		Height:        int32(src.Height),
		Planes:        1,
		BitCount:      32,
		ImageSize:     uint32(imageSize),
		XPelsPerMeter: xppm,
		YPelsPerMeter: yppm,
	}

	return fh, ih, nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrOutOfRange, "dimensions %dx%d", width, height)
	}
	return nil
}

// pelsPerMeter converts pixels per inch to pixels per meter, rounding half
// away from zero (96 dpi is 3780).
func pelsPerMeter(dpi float64) (int32, error) {
	if math.IsNaN(dpi) || dpi < 0 {
		return 0, errors.Wrapf(ErrOutOfRange, "%v dpi", dpi)
	}
	ppm := math.Round(dpi * InchesPerMeter)
	if ppm > math.MaxInt32 {
		return 0, errors.Wrapf(ErrOutOfRange, "%v dpi", dpi)
	}
	return int32(ppm), nil
}

// MarshalBinary writes the header field by field in little-endian order.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderLen)
	copy(b[0:2], h.Signature[:])
	binary.LittleEndian.PutUint32(b[2:6], h.FileSize)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.PixelOffset)
	return b, nil
}

func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderLen {
		return errors.Errorf("bitmap: file header needs %d bytes, got %d", FileHeaderLen, len(b))
	}
	copy(h.Signature[:], b[0:2])
	h.FileSize = binary.LittleEndian.Uint32(b[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:10])
	h.PixelOffset = binary.LittleEndian.Uint32(b[10:14])
	return nil
}

// MarshalBinary writes the header field by field in little-endian order.
func (h InfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderLen)
	binary.LittleEndian.PutUint32(b[0:4], h.Size)
	binary.LittleEndian.PutUint32(b[4:8], uint32(h.Width))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Height))
	binary.LittleEndian.PutUint16(b[12:14], h.Planes)
	binary.LittleEndian.PutUint16(b[14:16], h.BitCount)
	binary.LittleEndian.PutUint32(b[16:20], h.Compression)
	binary.LittleEndian.PutUint32(b[20:24], h.ImageSize)
	binary.LittleEndian.PutUint32(b[24:28], uint32(h.XPelsPerMeter))
	binary.LittleEndian.PutUint32(b[28:32], uint32(h.YPelsPerMeter))
	binary.LittleEndian.PutUint32(b[32:36], h.ColorsUsed)
	binary.LittleEndian.PutUint32(b[36:40], h.ColorsImportant)
	return b, nil
}

func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderLen {
		return errors.Errorf("bitmap: info header needs %d bytes, got %d", InfoHeaderLen, len(b))
	}
	h.Size = binary.LittleEndian.Uint32(b[0:4])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:8]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:12]))
	h.Planes = binary.LittleEndian.Uint16(b[12:14])
	h.BitCount = binary.LittleEndian.Uint16(b[14:16])
	h.Compression = binary.LittleEndian.Uint32(b[16:20])
	h.ImageSize = binary.LittleEndian.Uint32(b[20:24])
	h.XPelsPerMeter = int32(binary.LittleEndian.Uint32(b[24:28]))
	h.YPelsPerMeter = int32(binary.LittleEndian.Uint32(b[28:32]))
	h.ColorsUsed = binary.LittleEndian.Uint32(b[32:36])
	h.ColorsImportant = binary.LittleEndian.Uint32(b[36:40])
	return nil
}
