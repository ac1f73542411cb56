package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/azlinux-tools/ladcfg/pkg/config"
	"github.com/azlinux-tools/ladcfg/pkg/events"
	"github.com/azlinux-tools/ladcfg/pkg/generator"
	"github.com/azlinux-tools/ladcfg/pkg/handlerenv"
	"github.com/azlinux-tools/ladcfg/pkg/identity"
	"github.com/azlinux-tools/ladcfg/pkg/logger"
	"github.com/azlinux-tools/ladcfg/pkg/mdsd"
	"github.com/azlinux-tools/ladcfg/pkg/version"
)

const extensionName = "LinuxDiagnostic"

func main() {
	settingsPath := flag.String("settings", "/etc/ladcfg/settings.json", "Path to extension settings (JSON or YAML)")
	outDir := flag.String("out", ".", "Directory generated artifacts are written to")
	mdsdTemplatePath := flag.String("mdsd-template", "", "mdsd XML config template the generated fragments are merged into")
	handlerEnvPath := flag.String("handler-env", "", "Path to HandlerEnvironment.json (enables events-folder reporting)")
	syslogPort := flag.Int("syslog-port", 0, "Port substituted for the %SYSLOG_PORT% token (0 leaves the token in place)")
	syslogNGSource := flag.String("syslog-ng-source", generator.DefaultSyslogNGSource, "syslog-ng source identifier referenced by generated rules")
	saveIdentity := flag.Bool("save-identity", false, "Persist the machine deployment guid")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "text", "Log format (text or json)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return
	}

	logger.Configure(*logFormat, logger.LogLevel(*logLevel), nil)
	mainLog := logger.Get(logger.ComponentMain)

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	var recorder events.Recorder = events.NewLogRecorder()
	if *handlerEnvPath != "" {
		env, err := handlerenv.Load(*handlerEnvPath)
		if err != nil {
			log.Fatalf("Failed to load handler environment: %v", err)
		}
		if env.HandlerEnvironment.EventsFolder != "" {
			recorder = events.NewFolderRecorder(env.HandlerEnvironment.EventsFolder)
		}
	}

	gen := generator.New(generator.Options{
		SyslogEvents:   cfg.SyslogEvents,
		FileLogs:       cfg.FileLogs,
		Sinks:          &cfg.SinksConfig,
		SyslogNGSource: *syslogNGSource,
	})

	if err := writeArtifacts(gen, *outDir, *mdsdTemplatePath, *syslogPort, mainLog); err != nil {
		recorder.Record(extensionName, "GenerateLoggingConfig", false, err.Error())
		log.Fatalf("Failed to generate logging configuration: %v", err)
	}
	recorder.Record(extensionName, "GenerateLoggingConfig", true, "logging configuration generated")
	mainLog.Info("Logging configuration generated", "out", *outDir)

	if *saveIdentity {
		mi := identity.New()
		if err := mi.SaveIdentity(); err != nil {
			recorder.Record(extensionName, "SaveMachineIdentity", false, err.Error())
			log.Fatalf("Failed to save machine identity: %v", err)
		}
		recorder.Record(extensionName, "SaveMachineIdentity", true, "machine identity persisted")
	}
}

func writeArtifacts(gen *generator.Generator, outDir, mdsdTemplatePath string, syslogPort int, log *slog.Logger) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rsyslogConf, err := gen.RsyslogConfig()
	if err != nil {
		return err
	}
	syslogNGConf, err := gen.SyslogNGConfig()
	if err != nil {
		return err
	}
	mdsdSyslogConf, err := gen.MdsdSyslogConfig()
	if err != nil {
		return err
	}
	mdsdFileLogConf, err := gen.MdsdFileLogConfig()
	if err != nil {
		return err
	}
	fluentdTailConf, err := gen.FluentdFileLogSrcConfig()
	if err != nil {
		return err
	}
	fluentdOutConf, err := gen.FluentdOutMdsdConfig()
	if err != nil {
		return err
	}
	fluentdSyslogConf := gen.FluentdSyslogSrcConfig()

	// Port substitution is this caller's job; the generator leaves the
	// token untouched.
	if syslogPort > 0 {
		port := strconv.Itoa(syslogPort)
		rsyslogConf = strings.ReplaceAll(rsyslogConf, generator.SyslogPortToken, port)
		fluentdSyslogConf = strings.ReplaceAll(fluentdSyslogConf, generator.SyslogPortToken, port)
	}

	artifacts := []struct {
		name    string
		content string
	}{
		{"95-omsagent.conf", rsyslogConf},
		{"syslog-ng.conf", syslogNGConf},
		{"syslog.conf", fluentdSyslogConf},
		{"file.conf", fluentdTailConf},
		{"z_out_mdsd.conf", fluentdOutConf},
	}
	for _, a := range artifacts {
		if a.content == "" {
			continue
		}
		path := filepath.Join(outDir, a.name)
		if err := os.WriteFile(path, []byte(a.content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", a.name, err)
		}
		log.Debug("Wrote artifact", "path", path)
	}

	if mdsdTemplatePath == "" {
		// No template to merge into; emit the raw fragments.
		for _, a := range []struct{ name, content string }{
			{"mdsd_syslog.xml", mdsdSyslogConf},
			{"mdsd_filelog.xml", mdsdFileLogConf},
		} {
			if a.content == "" {
				continue
			}
			path := filepath.Join(outDir, a.name)
			if err := os.WriteFile(path, []byte(a.content), 0644); err != nil {
				return fmt.Errorf("write %s: %w", a.name, err)
			}
			log.Debug("Wrote artifact", "path", path)
		}
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(mdsdTemplatePath); err != nil {
		return fmt.Errorf("read mdsd template: %w", err)
	}
	if err := mdsd.MergeLoggingConfig(doc, mdsdSyslogConf); err != nil {
		return fmt.Errorf("merge mdsd syslog config: %w", err)
	}
	if err := mdsd.MergeLoggingConfig(doc, mdsdFileLogConf); err != nil {
		return fmt.Errorf("merge mdsd filelog config: %w", err)
	}

	doc.Indent(2)
	path := filepath.Join(outDir, "mdsd.xml")
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write mdsd.xml: %w", err)
	}
	log.Debug("Wrote artifact", "path", path)

	return nil
}
