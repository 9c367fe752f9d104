package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"stegano/config"
	"stegano/envelope"
	"stegano/media"
	"stegano/payload"
	"stegano/steg"
	"stegano/stegerr"
	"stegano/util"
)

const textOutputName = "secret-message.txt"

var logger *util.Logger

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	conf := loadConfig()
	logger = util.NewLogger(&conf.Logger)

	var err error
	switch os.Args[1] {
	case "hide":
		err = cmdHide(os.Args[2:], conf)
	case "unveil":
		err = cmdUnveil(os.Args[2:])
	case "unveil-raw":
		err = cmdUnveilRaw(os.Args[2:])
	case "capacity":
		err = cmdCapacity(os.Args[2:])
	default:
		help()
		return
	}

	if err != nil {
		logger.LogError(err)
		os.Exit(stegerr.ExitCode(err))
	}
}

func loadConfig() *config.Config {
	path, err := config.Path()
	if err != nil {
		return config.Default()
	}
	conf, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "broken config, using defaults:", err)
		return config.Default()
	}
	return conf
}

type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdHide(args []string, conf *config.Config) error {
	fs := flag.NewFlagSet("hide", flag.ContinueOnError)
	in := fs.String("in", "", "carrier media file (png, bmp or wav)")
	out := fs.String("out", "", "output stego media file")
	message := fs.String("message", "", "text message to hide")
	password := fs.String("password", "", "passphrase, '-' prompts on the terminal")
	framing := fs.String("framing", conf.Hide.Framing, "content version: auto, v2 or v4")
	var dataFiles stringList
	fs.Var(&dataFiles, "data", "file to hide, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		return usageError("hide needs --in and --out")
	}
	if *message == "" && len(dataFiles) == 0 {
		return usageError("hide needs --message or at least one --data")
	}

	pol := steg.Policy{Password: *password}
	if err := resolvePassword(&pol); err != nil {
		return err
	}
	switch *framing {
	case "", "auto":
		pol.Framing = steg.Auto
	case "v2":
		pol.Framing = steg.ForceV2
	case "v4":
		pol.Framing = steg.ForceV4
	default:
		return usageError("unknown framing " + *framing)
	}

	entries := make([]payload.Entry, 0, len(dataFiles))
	for _, f := range dataFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			return stegerr.Wrap(stegerr.Io, err)
		}
		entries = append(entries, payload.Entry{
			Name: filepath.Base(f),
			Data: data,
		})
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	m, err := media.Decode(raw)
	if err != nil {
		return err
	}

	if err := steg.Hide(m.Carrier, entries, *message, pol); err != nil {
		return err
	}

	encoded, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, encoded, 0644); err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	logger.LogInfo("wrote " + *out)
	return nil
}

func cmdUnveil(args []string) error {
	fs := flag.NewFlagSet("unveil", flag.ContinueOnError)
	in := fs.String("in", "", "stego media file")
	out := fs.String("out", ".", "output directory")
	password := fs.String("password", "", "passphrase, '-' prompts on the terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return usageError("unveil needs --in")
	}
	pol := steg.Policy{Password: *password}
	if err := resolvePassword(&pol); err != nil {
		return err
	}

	res, err := unveilFile(*in, pol)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0755); err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	written := 0
	for _, e := range res.Entries {
		name := e.Name
		if name == payload.TextEntryName && res.Text != "" {
			// the text message gets its own well known file name
			name = textOutputName
		}
		target := filepath.Join(*out, filepath.Base(name))
		if err := os.WriteFile(target, e.Data, 0644); err != nil {
			return stegerr.Wrap(stegerr.Io, err)
		}
		logger.LogInfo("wrote " + target)
		written++
	}
	if written == 0 {
		logger.LogWarning("no entries found in " + *in)
	}
	return nil
}

func cmdUnveilRaw(args []string) error {
	fs := flag.NewFlagSet("unveil-raw", flag.ContinueOnError)
	in := fs.String("in", "", "stego media file")
	out := fs.String("out", "", "output file for the raw byte stream")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		return usageError("unveil-raw needs --in and --out")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	m, err := media.Decode(raw)
	if err != nil {
		return err
	}
	data, err := steg.UnveilRaw(m.Carrier)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	return nil
}

func cmdCapacity(args []string) error {
	fs := flag.NewFlagSet("capacity", flag.ContinueOnError)
	in := fs.String("in", "", "carrier media file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return usageError("capacity needs --in")
	}
	raw, err := os.ReadFile(*in)
	if err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	m, err := media.Decode(raw)
	if err != nil {
		return err
	}
	c := m.Carrier
	fmt.Printf("%s: %d bits, %d bytes, %d payload bytes with v4 framing\n",
		m.Format, c.Capacity(), c.CapacityBytes(), steg.Capacity(c, envelope.V4))
	return nil
}

func unveilFile(in string, pol steg.Policy) (*steg.Result, error) {
	raw, err := os.ReadFile(in)
	if err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	m, err := media.Decode(raw)
	if err != nil {
		return nil, err
	}
	return steg.Unveil(m.Carrier, pol)
}

func resolvePassword(pol *steg.Policy) error {
	if pol.Password != "-" {
		return nil
	}
	pw, err := util.GetPasswd("Password: ")
	if err != nil {
		return stegerr.Wrap(stegerr.Io, err)
	}
	pol.Password = string(pw)
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s", msg)
}

func help() {
	line := `Usage: stegano <command> [arguments]

The following commands are supported:
	hide		embed files or a text message into a carrier
			--in <media> --out <media> (--data <path>... | --message <text>)
			[--password <pw>] [--framing auto|v2|v4]
	unveil		recover hidden entries
			--in <media> --out <dir> [--password <pw>]
	unveil-raw	dump the raw LSB byte stream without framing
			--in <media> --out <file>
	capacity	print how much a carrier can hold
			--in <media>
`
	fmt.Printf("%s", line)
}
