package api

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/ldisk/gatehouse/internal/logutil"
)

// trackVisit records one hit against a tracking id. Besides the structured
// log entry, a pipe-separated line goes to stdout so it can be redirected
// to a file without the regular logs (stderr) getting mixed in.
func trackVisit() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		log := logutil.GetOrDefault(r.Context())
		id := params.ByName("id")
		username := headerOr(r, "X-Username")
		computer := headerOr(r, "X-ComputerName")
		ip := remoteIP(r)

		log.Debug().Str("username", username).Msg("Hit recorded")
		fmt.Fprintf(os.Stdout, "%v|%v|%v|%v|%v|%v|%v\n",
			time.Now().Format(time.RFC3339), id, ip, r.RequestURI,
			username, computer, r.UserAgent())
		w.WriteHeader(http.StatusNoContent)
	}
}

func headerOr(r *http.Request, header string) string {
	val := r.Header.Get(header)
	if val == "" {
		return "No " + header
	}
	return val
}

func remoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
