package generator

import (
	"errors"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var quotaPhrases = []string{
	"insufficient_quota",
	"quota exceeded",
	"rate limit",
	"too many requests",
}

var modelNotFoundPhrases = []string{
	"not found",
	"not supported for generatecontent",
}

// IsQuotaError reports whether err is the provider refusing work because of
// quota, billing or rate limits.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == http.StatusTooManyRequests {
		return true
	}

	message := strings.ToLower(err.Error())
	for _, phrase := range quotaPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return strings.Contains(" "+message+" ", " 429 ") || strings.HasPrefix(message, "429")
}

// IsModelNotFoundError reports whether err means the requested model id is
// unknown or cannot serve generateContent.
func IsModelNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == http.StatusNotFound {
		return true
	}

	message := strings.ToLower(err.Error())
	for _, phrase := range modelNotFoundPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}

// statusCode digs an HTTP-equivalent status out of the error chain, or 0.
func statusCode(err error) int {
	var coder interface{ StatusCode() int }
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		if code := aerr.HTTPCode(); code > 0 {
			return code
		}
		if st := aerr.GRPCStatus(); st != nil {
			return grpcToHTTP(st.Code())
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		return grpcToHTTP(st.Code())
	}
	return 0
}

func grpcToHTTP(code codes.Code) int {
	switch code {
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return 0
	}
}
