package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"

	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/extract"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/pipeline"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// maxUploadBytes bounds request bodies, uploads included
const maxUploadBytes = 32 << 20

// Runner executes one pipeline request
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Server serves the web interface
type Server struct {
	app    *fiber.App
	runner Runner
	out    io.Writer

	// runs are serialized: there is one output slot
	mu   sync.Mutex
	last *pipeline.Result
}

type translateResponse struct {
	RunID       string `json:"run_id"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Chunks      int    `json:"chunks"`
	Translation string `json:"translation"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// New creates the server and registers its routes
func New(runner Runner, out io.Writer) *Server {
	if out == nil {
		out = io.Discard
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "voxlate",
			BodyLimit:             maxUploadBytes,
			DisableStartupMessage: true,
		}),
		runner: runner,
		out:    out,
	}

	s.app.Get("/", s.handleIndex)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Get("/api/languages", s.handleLanguages)
	s.app.Post("/api/translate", s.handleTranslate)
	s.app.Get("/download/"+translation.FileName, s.handleDownloadText)
	s.app.Get("/download/audio.mp3", s.handleDownloadAudio)

	return s
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	fmt.Fprintf(s.out, "Server listening on http://localhost%s\n", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexHTML)
}

func (s *Server) handleLanguages(c *fiber.Ctx) error {
	return c.JSON(languages.All())
}

func (s *Server) handleTranslate(c *fiber.Ctx) error {
	lang, err := languages.Lookup(c.FormValue("language", languages.Default().Name))
	if err != nil {
		return s.fail(c, err)
	}

	req := pipeline.Request{
		Text:     c.FormValue("text"),
		Language: lang,
	}

	if fh, err := c.FormFile("file"); err == nil {
		doc, err := readUpload(fh)
		if err != nil {
			return s.fail(c, err)
		}
		req.Document = doc
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A new submission discards the previous result
	s.last = nil

	result, err := s.runner.Run(c.UserContext(), req)
	if err != nil {
		return s.fail(c, err)
	}
	s.last = result

	return c.JSON(translateResponse{
		RunID:       result.RunID,
		Language:    result.Language.Name,
		Code:        result.Language.Code,
		Chunks:      len(result.Chunks),
		Translation: result.Translation,
	})
}

func (s *Server) handleDownloadText(c *fiber.Ctx) error {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		return fiber.NewError(http.StatusNotFound, "no translation yet")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+translation.FileName+`"`)
	c.Type("txt", "utf-8")
	return c.SendString(last.Translation)
}

func (s *Server) handleDownloadAudio(c *fiber.Ctx) error {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil || last.Audio == nil {
		return fiber.NewError(http.StatusNotFound, "no audio yet")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+audio.OutputFileName+`"`)
	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(last.Audio.Data)
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	kind := pipeline.Kind(err)
	fmt.Fprintf(s.out, "Request failed (%s): %v\n", kind, err)

	return c.Status(statusFor(kind)).JSON(errorResponse{
		Error: err.Error(),
		Kind:  kind,
	})
}

// statusFor maps an error kind to an HTTP status
func statusFor(kind string) int {
	switch kind {
	case pipeline.KindEmptyInput, pipeline.KindUnsupportedFileType,
		pipeline.KindNoExtractableText, pipeline.KindUnknownLanguage:
		return http.StatusBadRequest
	case pipeline.KindTranslationFailed, pipeline.KindSynthesisFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func readUpload(fh *multipart.FileHeader) (*extract.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return &extract.Document{
		Name:      fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}
