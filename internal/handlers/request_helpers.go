package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/core/domain"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes bounds CSV imports and backup restores.
const maxUploadBytes = 32 << 20

const dayLayout = "2006-01-02"

// sessionFrom returns the caller session or answers 401.
func sessionFrom(c *gin.Context) (domain.Session, bool) {
	sess, ok := middleware.GetSessionFromCtx(c.Request.Context())
	if !ok || sess.UserID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return domain.Session{}, false
	}
	return sess, true
}

// toDateRange turns inclusive calendar days into a half-open range in loc.
// Both bounds empty means all time and yields nil.
func toDateRange(p dto.DateRangeParams, loc *time.Location) (*domain.DateRange, error) {
	if p.From == "" && p.To == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	var rng domain.DateRange
	if p.From != "" {
		from, err := time.ParseInLocation(dayLayout, p.From, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, p.From)
		}
		rng.From = from
	}
	if p.To != "" {
		to, err := time.ParseInLocation(dayLayout, p.To, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, p.To)
		}
		rng.To = to.AddDate(0, 0, 1)
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && !rng.From.Before(rng.To) {
		return nil, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	return &rng, nil
}

// readUpload returns the "file" form part when the request is multipart, else the raw body.
func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: missing file field: %v", apperrors.ErrValidation, err)
		}
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable upload: %v", apperrors.ErrValidation, err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable body: %v", apperrors.ErrValidation, err)
	}
	return data, nil
}

// sendFile writes a download with an attachment disposition.
func sendFile(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// datedFilename stamps base with today's date, e.g. transactions_2024-05-01.csv.
func datedFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format(dayLayout), ext)
}
