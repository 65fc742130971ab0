package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// assembleAVI concatenates JPEG chunks into a playable MJPEG AVI.
// Classic RIFF layout: a hdrl list (avih + strl with strh/strf), a
// movi list holding one 00dc chunk per frame, and an idx1 index
// (AVIF_HASINDEX is set). All chunk sizes are known up front, so the
// container is written in one sequential pass.
func assembleAVI(chunks [][]byte, width, height, fps int) ([]byte, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", fps)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	frames := len(chunks)

	moviBody := 4 // "movi" type fourcc
	for _, c := range chunks {
		moviBody += 8 + padded(len(c))
	}
	idxBody := 16 * frames
	const hdrlBody = 4 + (8 + 56) + (8 + strlBody) // "hdrl" + avih + LIST strl
	riffBody := 4 + (8 + hdrlBody) + (8 + moviBody) + (8 + idxBody)

	var buf bytes.Buffer
	buf.Grow(riffBody + 8)

	fourCC(&buf, "RIFF")
	u32(&buf, uint32(riffBody))
	fourCC(&buf, "AVI ")

	// Header list.
	fourCC(&buf, "LIST")
	u32(&buf, hdrlBody)
	fourCC(&buf, "hdrl")

	fourCC(&buf, "avih")
	u32(&buf, 56)
	u32(&buf, uint32(1000000/fps)) // microseconds per frame
	u32(&buf, 0)                   // max bytes per second
	u32(&buf, 0)                   // padding granularity
	u32(&buf, 0x10)                // AVIF_HASINDEX
	u32(&buf, uint32(frames))
	u32(&buf, 0) // initial frames
	u32(&buf, 1) // one stream: video only
	u32(&buf, 0) // suggested buffer size
	u32(&buf, uint32(width))
	u32(&buf, uint32(height))
	u32(&buf, 0)
	u32(&buf, 0)
	u32(&buf, 0)
	u32(&buf, 0)

	fourCC(&buf, "LIST")
	u32(&buf, strlBody)
	fourCC(&buf, "strl")

	fourCC(&buf, "strh")
	u32(&buf, 56)
	fourCC(&buf, "vids")
	fourCC(&buf, "MJPG")
	u32(&buf, 0)               // flags
	u32(&buf, 0)               // priority + language
	u32(&buf, 0)               // initial frames
	u32(&buf, 1)               // scale
	u32(&buf, uint32(fps))     // rate; fps = rate/scale
	u32(&buf, 0)               // start
	u32(&buf, uint32(frames))  // stream length in frames
	u32(&buf, 0)               // suggested buffer size
	u32(&buf, 0xFFFFFFFF)      // quality: driver default
	u32(&buf, 0)               // sample size: one frame per chunk
	u32(&buf, 0)               // rcFrame left/top
	u32(&buf, 0)               // rcFrame right/bottom

	fourCC(&buf, "strf")
	u32(&buf, 40)
	u32(&buf, 40) // BITMAPINFOHEADER size
	u32(&buf, uint32(width))
	u32(&buf, uint32(height))
	u16(&buf, 1)  // planes
	u16(&buf, 24) // bits per pixel
	fourCC(&buf, "MJPG")
	u32(&buf, uint32(width*height*3)) // decompressed image size
	u32(&buf, 0)
	u32(&buf, 0)
	u32(&buf, 0)
	u32(&buf, 0)

	// Frame data.
	fourCC(&buf, "LIST")
	u32(&buf, uint32(moviBody))
	fourCC(&buf, "movi")

	offsets := make([]int, frames)
	off := 4 // relative to the "movi" fourcc
	for i, c := range chunks {
		offsets[i] = off
		fourCC(&buf, "00dc")
		u32(&buf, uint32(len(c)))
		buf.Write(c)
		if len(c)&1 != 0 {
			buf.WriteByte(0)
		}
		off += 8 + padded(len(c))
	}

	// Index: every frame is an MJPEG keyframe.
	fourCC(&buf, "idx1")
	u32(&buf, uint32(idxBody))
	for i, c := range chunks {
		fourCC(&buf, "00dc")
		u32(&buf, 0x10) // AVIIF_KEYFRAME
		u32(&buf, uint32(offsets[i]))
		u32(&buf, uint32(len(c)))
	}

	return buf.Bytes(), nil
}

// strlBody is the byte count of the strl list body: its type fourcc
// plus the strh and strf chunks.
const strlBody = 4 + (8 + 56) + (8 + 40)

func padded(n int) int {
	return n + n&1
}

func fourCC(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
}

func u32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func u16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}
