package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/text"
	"github.com/mrnavastar/launchman/api"
	"github.com/mrnavastar/launchman/services"
	"github.com/mrnavastar/launchman/util"
	"github.com/mrnavastar/launchman/util/fileutils"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func dirFlag() cli.Flag {
	home, _ := os.UserHomeDir()
	return &cli.StringFlag{
		Name:  "dir",
		Value: filepath.Join(home, ".launchman"),
		Usage: "Instance directory",
	}
}

func pickVersion(c *cli.Context) (string, error) {
	version := c.Args().Get(0)
	if version != "" {
		return version, nil
	}
	entry, err := api.LatestRelease()
	if err != nil {
		return "", err
	}
	return entry.Id, nil
}

func downloadProgress() fileutils.ProgressFunc {
	last := -1
	return func(done, total int64) {
		if total <= 0 {
			return
		}
		pct := int(done * 100 / total)
		if pct/10 > last/10 {
			last = pct
			pterm.Info.Printf("downloaded %d%%\n", pct)
		}
	}
}

func main() {
	registry := services.NewRegistry()

	app := &cli.App{
		Name:  "launchman",
		Usage: "Download, verify and launch Minecraft versions",
		Commands: []*cli.Command{
			{
				Name:  "versions",
				Usage: "List launchable versions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Value: "release", Usage: "release, snapshot, old_beta or old_alpha"},
				},
				Action: func(c *cli.Context) error {
					kind := c.String("type")
					if !util.Contains([]string{"release", "snapshot", "old_beta", "old_alpha"}, kind) {
						return fmt.Errorf("unknown version type %q", kind)
					}

					manifest, err := api.FetchManifest()
					if err != nil {
						return err
					}

					lid := 0
					for _, v := range manifest.Versions {
						if v.Type == kind && len(v.Id) > lid {
							lid = len(v.Id)
						}
					}

					fmt.Println()
					fmt.Println(text.AlignDefault.Apply("ID:", lid+2) + "RELEASED:")
					for _, v := range manifest.Versions {
						if v.Type != kind {
							continue
						}
						fmt.Println(text.AlignDefault.Apply(text.Bold.Sprint(v.Id), lid+2) + v.ReleaseTime.Format("2006-01-02"))
					}
					fmt.Println()
					return nil
				},
			},
			{
				Name:  "prepare",
				Usage: "Download and verify everything a version needs",
				Flags: []cli.Flag{dirFlag()},
				Action: func(c *cli.Context) error {
					version, err := pickVersion(c)
					if err != nil {
						return err
					}

					if _, err := services.Prepare(version, c.String("dir"), downloadProgress()); err != nil {
						return err
					}
					pterm.Success.Println(version + " is ready to launch")
					return nil
				},
			},
			{
				Name:  "launch",
				Usage: "Launch a version end to end",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.StringFlag{Name: "username", Value: "Player"},
					&cli.StringFlag{Name: "uuid"},
					&cli.StringFlag{Name: "token", Usage: "Bearer token, stored in the OS keychain for next time"},
				},
				Action: func(c *cli.Context) error {
					version, err := pickVersion(c)
					if err != nil {
						return err
					}

					token := c.String("token")
					if token == "" {
						if saved, err := fileutils.LoadToken(c.String("username")); err == nil {
							token = saved
						}
					} else if err := fileutils.SaveToken(c.String("username"), token); err != nil {
						pterm.Warning.Println("could not store token in keychain: " + err.Error())
					}

					opts := util.LaunchOptions{
						Account: util.Account{
							Name:        c.String("username"),
							Uuid:        c.String("uuid"),
							AccessToken: token,
							Type:        "msa",
						},
					}

					process, id, err := services.Launch(version, c.String("dir"), opts, registry)
					if err != nil {
						return err
					}

					for line := range process.Lines() {
						fmt.Println(line)
					}

					status, err := process.Wait()
					registry.Remove(id)
					if err != nil {
						return err
					}
					pterm.Info.Printf("exited with code %d\n", status.ExitCode)
					return nil
				},
			},
			{
				Name:  "crashes",
				Usage: "List crash reports, most recent first",
				Flags: []cli.Flag{dirFlag()},
				Action: func(c *cli.Context) error {
					reports, err := services.ListCrashReports(c.String("dir"))
					if err != nil {
						return err
					}
					if len(reports) == 0 {
						fmt.Println("no crash reports")
						return nil
					}
					for _, report := range reports {
						fmt.Println(report)
					}
					return nil
				},
			},
		},
	}

	util.Fatal(app.Run(os.Args))
}
