package errors

// ErrorConfig error handling middleware ayarları
type ErrorConfig struct {
	ShowStackTrace  bool           // Stack trace'i response'da göster (sadece development)
	CustomErrorMap  map[int]string // Panic sonrası status code'a göre mesajlar
	EnablePanicLogs bool           // Panic stack trace'ini logla
	MaxErrorLength  int            // Error mesajının maksimum uzunluğu
}

// DefaultErrorConfig varsayılan error handling ayarları
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		ShowStackTrace: false,
		CustomErrorMap: map[int]string{
			500: "Beklenmeyen sunucu hatası, işlem uygulanmadı.",
			503: "Guild servisi geçici olarak kullanılamıyor.",
		},
		EnablePanicLogs: true,
		MaxErrorLength:  500,
	}
}

// DevelopmentErrorConfig development ortamı için ayarlar
func DevelopmentErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.ShowStackTrace = true
	config.MaxErrorLength = 2000
	return config
}

// ProductionErrorConfig production ortamı için güvenli ayarlar
func ProductionErrorConfig() *ErrorConfig {
	config := DefaultErrorConfig()
	config.CustomErrorMap[500] = "Bir hata oluştu."
	config.MaxErrorLength = 200
	return config
}

// ForEnv APP_ENV değerine göre config seçer
func ForEnv(env string) *ErrorConfig {
	switch env {
	case "development", "dev", "local":
		return DevelopmentErrorConfig()
	case "production", "prod":
		return ProductionErrorConfig()
	default:
		return DefaultErrorConfig()
	}
}
