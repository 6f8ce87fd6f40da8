package detector

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"

	"gocv.io/x/gocv"
)

// Frames travel to the landmark service as a 4-byte big-endian length
// followed by JPEG bytes. Each reply is one JSON line.

// maxFrameBytes bounds a single frame message.
const maxFrameBytes = 8 << 20

// encodeFrame JPEG-encodes frame, shrinking it to maxWidth first when it
// is wider.
func encodeFrame(frame *gocv.Mat, maxWidth int) ([]byte, error) {
	src := *frame
	if maxWidth > 0 && frame.Cols() > maxWidth {
		h := frame.Rows() * maxWidth / frame.Cols()
		small := gocv.NewMat()
		defer small.Close()
		gocv.Resize(*frame, &small, image.Pt(maxWidth, h), 0, 0, gocv.InterpolationArea)
		src = small
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, src)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...), nil
}

// writeFrame sends one length-prefixed message.
func writeFrame(w io.Writer, data []byte) error {
	if len(data) > maxFrameBytes {
		return fmt.Errorf("frame of %d bytes exceeds %d", len(data), maxFrameBytes)
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

type wireHand struct {
	Points     []wirePoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

// Pointer fields tell an absent coordinate from a zero one.
type wirePoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

// ParseHands decodes one reply line of the landmark service. Points the
// service did not report come back as NaN so Validate rejects the hand.
func ParseHands(line []byte) ([]HandLandmarks, error) {
	var reply struct {
		Hands []wireHand `json:"hands"`
	}
	if err := json.Unmarshal(line, &reply); err != nil {
		return nil, fmt.Errorf("parse landmarks: %w", err)
	}

	hands := make([]HandLandmarks, 0, len(reply.Hands))
	for _, h := range reply.Hands {
		hands = append(hands, h.landmarks())
	}
	return hands, nil
}

func (h wireHand) landmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: h.Handedness, Score: h.Score}
	for i := range lm.Points {
		if i >= len(h.Points) {
			lm.Points[i] = Point3D{X: math.NaN(), Y: math.NaN()}
			continue
		}
		p := h.Points[i]
		lm.Points[i] = Point3D{X: orNaN(p.X), Y: orNaN(p.Y)}
		if p.Z != nil {
			lm.Points[i].Z = *p.Z
		}
	}
	return lm
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
