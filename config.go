package visiontech

// Config represents the main config
type Config struct {
	DB struct {
		Path string
	}

	HTTP struct {
		Addr string
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}

	Newsletter struct {
		From    string
		Product struct {
			Name string
		}
	}

	Admin struct {
		Email    string
		Password string
	}

	JWT struct {
		Secret string
	}

	Stats struct {
		Cron struct {
			Spec string
		}
	}

	Uploads struct {
		Dir     string
		BaseURL string

		S3 struct {
			Bucket  string
			Region  string
			Prefix  string
			BaseURL string
		}
	}

	Sentry struct {
		DSN string
	}

	AMQP struct {
		URL string
	}
}
