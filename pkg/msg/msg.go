package msg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const defaultMessagesPath = "configs/messages.yml"

var (
	mu       sync.RWMutex
	messages = make(map[string]string)
)

// init loads the message catalogue when the default file is reachable.
func init() {
	path, ok := os.LookupEnv("MESSAGES_FILE_PATH")
	if !ok {
		path = defaultMessagesPath
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := Init(path); err != nil {
		log.Printf("Fail to read messages: %v", err)
	}
}

// MustInit loads the catalogue and aborts the process on failure.
func MustInit(path string) {
	if path == "" {
		path = defaultMessagesPath
		if value, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
			path = value
		}
	}
	if err := Init(path); err != nil {
		log.Fatalf("Fail to read messages: %v", err)
	}
}

// Init reads a YAML message catalogue. It uses a dedicated viper instance so it
// never clobbers the application properties.
func Init(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	parsed := make(map[string]string)
	parseMessageMap("", v.AllSettings(), parsed)
	Load(parsed)
	return nil
}

// Load merges the given key/template pairs into the catalogue.
func Load(values map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	for key, value := range values {
		messages[key] = value
	}
}

// parseMessageMap reads the yml tree recursively into dotted keys
func parseMessageMap(prefix string, data map[string]interface{}, result map[string]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]interface{}:
			parseMessageMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// Has reports whether the catalogue holds the key.
func Has(key string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := messages[key]
	return ok
}

// GetMessage returns the template for key with {0}, {1}, ... replaced by args
func GetMessage(key string, args ...interface{}) string {
	mu.RLock()
	msg, exists := messages[key]
	mu.RUnlock()
	if !exists {
		return fmt.Sprintf("Message not found: %s", key)
	}

	for i, arg := range args {
		placeholder := fmt.Sprintf("{%d}", i)
		msg = strings.ReplaceAll(msg, placeholder, argToString(arg))
	}

	return msg
}

func argToString(arg interface{}) string {
	if arg == nil {
		return ""
	}
	if s, ok := arg.(fmt.Stringer); ok {
		return s.String()
	}
	if isPrimitive(arg) {
		return primitiveToString(arg)
	}
	if err, ok := arg.(error); ok {
		return err.Error()
	}
	jsonBytes, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%v", arg)
	}
	return string(jsonBytes)
}

// isPrimitive checks if the provided value is of a primitive kind
func isPrimitive(value interface{}) bool {
	switch reflect.TypeOf(value).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	default:
		return false
	}
}

func primitiveToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
