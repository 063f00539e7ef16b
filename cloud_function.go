package blogchecker

import (
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/transport/server"
)

// DefaultFunctionTarget is registered when FUNCTION_TARGET is not set
const DefaultFunctionTarget = "FilterTechEntries"

func init() {
	functionTarget := os.Getenv("FUNCTION_TARGET")
	if functionTarget == "" {
		functionTarget = DefaultFunctionTarget
	}

	logrus.WithField("target", functionTarget).Info("✅ Registering function")

	functions.HTTP(functionTarget, FilterTechEntries)
}

// FilterTechEntries returns the technical entries of the feed of the site
// given by the url query parameter.
func FilterTechEntries(w http.ResponseWriter, r *http.Request) {
	server.HandleRequest(w, r)
}
