package respond

import (
	"encoding/json"
	"net/http"
)

// fallback отдается, если data не удалось сериализовать
var fallback = []byte(`{"success":false,"message":"Internal Server Error"}` + "\n")

// JSON сериализует data до записи заголовков, чтобы ошибка кодирования
// не оставила клиента с пустым телом
func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		code = http.StatusInternalServerError
		body = fallback
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// Error пишет минимальный конверт ошибки {success:false, message}
func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, map[string]interface{}{"success": false, "message": message})
}
