package encoder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/richinsley/gofractal/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
// Pixels are RGBA rows, bottom row first, as glReadPixels returns them.
type Frame struct {
	Pixels []byte
	PTS    int64
}

var ErrClosed = errors.New("encoder closed")

// Encoder pipes raw RGBA frames into an ffmpeg process.
type Encoder struct {
	opts      *options.FractalOptions
	frameSize int

	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter

	videoFrames chan *Frame
	failed      chan struct{}
	done        chan error
}

func NewEncoder(opts *options.FractalOptions) *Encoder {
	return &Encoder{
		opts:        opts,
		frameSize:   *opts.Width * *opts.Height * 4,
		videoFrames: make(chan *Frame, 3),
		failed:      make(chan struct{}),
		done:        make(chan error, 1),
	}
}

// GetArgs returns the ffmpeg input and output arguments for the options.
func GetArgs(opts *options.FractalOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		// GL rows arrive bottom-up.
		"vf":  "vflip",
		"b:v": "25M",
	}
	if *opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(*opts.OutputFile, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// Start launches ffmpeg and the goroutine feeding it.
func (e *Encoder) Start() error {
	e.pipeReader, e.pipeWriter = io.Pipe()
	inputArgs, outputArgs := GetArgs(e.opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*e.opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(e.pipeReader).ErrorToStdOut()

	if *e.opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*e.opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg stopped reading early.
		e.pipeReader.CloseWithError(ErrClosed)
		errc <- err
	}()

	go e.run(errc)
	return nil
}

func (e *Encoder) run(errc <-chan error) {
	var writeErr error
	for frame := range e.videoFrames {
		if writeErr != nil {
			continue
		}
		if len(frame.Pixels) != e.frameSize {
			writeErr = fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.frameSize)
			close(e.failed)
			continue
		}
		if _, err := e.pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			close(e.failed)
		}
	}
	e.pipeWriter.Close()

	runErr := <-errc
	if runErr != nil {
		e.done <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	if writeErr != nil {
		log.Printf("Encoder stopped: %v", writeErr)
		e.done <- writeErr
		return
	}
	e.done <- nil
}

// SendVideo queues a frame. It fails once the encoder has given up, so the
// render loop can stop early.
func (e *Encoder) SendVideo(frame *Frame) error {
	select {
	case <-e.failed:
		return ErrClosed
	default:
	}
	select {
	case e.videoFrames <- frame:
		return nil
	case <-e.failed:
		return ErrClosed
	}
}

// Close flushes the queued frames and waits for ffmpeg to exit.
func (e *Encoder) Close() error {
	close(e.videoFrames)
	return <-e.done
}
