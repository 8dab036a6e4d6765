package utils

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error répond avec le message utilisateur et log l'erreur technique
// sous-jacente si elle est fournie
func Error(w http.ResponseWriter, status int, message string, errs ...error) {
	for _, err := range errs {
		if err != nil {
			LogError("[%d] %s: %v", status, message, err)
		}
	}
	JSON(w, status, APIResponse{Success: false, Error: message})
}

// ErrorSimple répond sans rien logger (cas attendus: 401, 403...)
func ErrorSimple(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIResponse{Success: false, Error: message})
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
