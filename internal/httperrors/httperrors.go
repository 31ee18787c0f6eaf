package httperrors

import (
	"fmt"
	"net/http"

	"gitlab.com/tachyons/servedir/internal/errortracking"
	"gitlab.com/tachyons/servedir/internal/logging"
)

type content struct {
	status       int
	title        string
	statusString string
	header       string
	subHeader    string
}

var (
	content403 = content{
		http.StatusForbidden,
		"Forbidden (403)",
		"403",
		"You don't have permission to access the resource.",
		`<p>The resource that you are attempting to access lies outside of the directory served here.</p>`,
	}
	content404 = content{
		http.StatusNotFound,
		"The page you're looking for could not be found (404)",
		"404",
		"The page you're looking for could not be found.",
		`<p>The resource that you are attempting to access does not exist.</p>
     <p>Make sure the address is correct and that the file hasn't moved.</p>`,
	}
	content414 = content{
		http.StatusRequestURITooLong,
		"Request URI Too Long (414)",
		"414",
		"Request URI Too Long.",
		`<p>The URI provided was too long for the server to process.</p>
     <p>Try to make the request URI shorter.</p>`,
	}
	content429 = content{
		http.StatusTooManyRequests,
		"Too many requests (429)",
		"429",
		"Too many requests.",
		`<p>The resource that you are attempting to access is being rate limited.</p>`,
	}
	content500 = content{
		http.StatusInternalServerError,
		"Something went wrong (500)",
		"500",
		"Whoops, something went wrong on our end.",
		`<p>Try refreshing the page, or going back and attempting the action again.</p>
     <p>Please contact your administrator if this problem persists.</p>`,
	}
)

const predefinedErrorPage = `
<!DOCTYPE html>
<html>
<head>
  <meta content="width=device-width, initial-scale=1, maximum-scale=1" name="viewport">
  <title>%v</title>
  <style>
    body {
      color: #666;
      text-align: center;
      font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
      margin: auto;
      font-size: 14px;
    }

    h1 {
      font-size: 56px;
      line-height: 100px;
      font-weight: 400;
      color: #456;
    }

    h3 {
      color: #456;
      font-size: 20px;
      font-weight: 400;
      line-height: 28px;
    }

    hr {
      max-width: 800px;
      margin: 18px auto;
      border: 0;
      border-top: 1px solid #EEE;
      border-bottom: 1px solid white;
    }

    .container {
      margin: auto 20px;
    }
  </style>
</head>

<body>
  <h1>
    %v
  </h1>
  <div class="container">
    <h3>%v</h3>
    <hr />
    %v
  </div>
</body>
</html>
`

func generateErrorHTML(c content) string {
	return fmt.Sprintf(predefinedErrorPage, c.title, c.statusString, c.header, c.subHeader)
}

func serveErrorPage(w http.ResponseWriter, c content) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(c.status)
	fmt.Fprintln(w, generateErrorHTML(c))
}

// Serve403 returns a 403 error response / HTML page to the http.ResponseWriter
func Serve403(w http.ResponseWriter) {
	serveErrorPage(w, content403)
}

// Serve404 returns a 404 error response / HTML page to the http.ResponseWriter
func Serve404(w http.ResponseWriter) {
	serveErrorPage(w, content404)
}

// Serve414 returns a 414 error response / HTML page to the http.ResponseWriter
func Serve414(w http.ResponseWriter) {
	serveErrorPage(w, content414)
}

// Serve429 returns a 429 error response / HTML page to the http.ResponseWriter
func Serve429(w http.ResponseWriter) {
	serveErrorPage(w, content429)
}

// Serve500 returns a 500 error response / HTML page to the http.ResponseWriter
func Serve500(w http.ResponseWriter) {
	serveErrorPage(w, content500)
}

// Serve500WithRequest logs and reports err before serving the 500 error page
func Serve500WithRequest(w http.ResponseWriter, r *http.Request, reason string, err error) {
	logging.LogRequest(r).WithError(err).Error(reason)
	errortracking.CaptureErrWithReqAndStackTrace(err, r)
	serveErrorPage(w, content500)
}

// ServeStatus serves the error page matching status, falling back to a bare
// status line for codes without a predefined page.
func ServeStatus(w http.ResponseWriter, status int) {
	switch status {
	case http.StatusForbidden:
		Serve403(w)
	case http.StatusNotFound:
		Serve404(w)
	case http.StatusRequestURITooLong:
		Serve414(w)
	case http.StatusTooManyRequests:
		Serve429(w)
	case http.StatusInternalServerError:
		Serve500(w)
	default:
		w.WriteHeader(status)
	}
}
