package models

// Config represents the application configuration
type Config struct {
	Email  EmailConfig  `yaml:"email"`
	Digest DigestConfig `yaml:"digest"`
}

// EmailConfig represents IMAP mail store configuration
type EmailConfig struct {
	Imap     string `yaml:"imap"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

// DigestConfig controls the scan window and the digest output
type DigestConfig struct {
	DaysBack    int    `yaml:"daysBack"`    // 1 = today only
	IncludeBody bool   `yaml:"includeBody"`
	FolderPath  string `yaml:"folderPath"` // "Inbox" or slash-delimited path
	WindowSize  int    `yaml:"windowSize"`
}
