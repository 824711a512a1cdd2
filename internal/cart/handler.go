package cart

import (
	"encoding/json"
	"net/http"
)

// MenuHandler handles GET /menu.
func MenuHandler(w http.ResponseWriter, r *http.Request) {
	response, _ := json.Marshal(map[string]interface{}{
		"success":     true,
		"menu":        Menu,
		"maxPerOrder": MaxItems,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
