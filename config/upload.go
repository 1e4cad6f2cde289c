package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

// UploadContexts - правила для загружаемых и архивируемых файлов.
var UploadContexts = map[string]UploadConfig{
	// Файл резервной копии, загружаемый через multipart. JSON определяется как text/plain.
	"backup_import": {
		AllowedMimeTypes: []string{"text/plain; charset=utf-8", "application/json"},
		MaxSizeMB:        20,
		PathPrefix:       "imports",
	},
	// Копии экспорта, которые сохраняются в BACKUP_DIR
	"backup_export": {
		PathPrefix: "exports",
	},
}
