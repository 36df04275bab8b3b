package main

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/knowledgehub/knowledgehub/articles"
	"github.com/knowledgehub/knowledgehub/cmd/knowledgehub/config"
	"github.com/knowledgehub/knowledgehub/storage"
	"github.com/knowledgehub/knowledgehub/storage/model"
	"github.com/knowledgehub/knowledgehub/summarizer"
)

type cli struct {
	configFile string
	warehouse  *storage.Storage
	backends   model.Backends
}

func (c *cli) loadConfig(_ *cobra.Command, _ []string) error {
	conf, err := config.LoadFile(c.configFile)
	if err != nil {
		return err
	}
	c.warehouse, c.backends, err = config.LoadStorage(conf.Storage)
	return err
}

func (c *cli) close(_ *cobra.Command, _ []string) error {
	if c.warehouse == nil {
		return nil
	}
	return c.warehouse.Close()
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:                "khcli",
		Short:              "khcli can help you manage your knowledge hub",
		Long:               "khcli can help you manage the users and articles of your knowledge hub",
		SilenceUsage:       true,
		PersistentPreRunE:  c.loadConfig,
		PersistentPostRunE: c.close,
	}
	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "config.yaml", "the config file to use")
	rootCmd.AddCommand(c.usersCmd(), c.articlesCmd())
	return rootCmd
}

type userOut struct {
	ID        uint      `yaml:"id"`
	Username  string    `yaml:"username"`
	Role      string    `yaml:"role"`
	CreatedAt time.Time `yaml:"created_at"`
}

func newUserOut(u model.User) userOut {
	return userOut{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (c *cli) usersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.backends.Users.List()
			if err != nil {
				return err
			}
			out := make([]userOut, len(users))
			for i, u := range users {
				out[i] = newUserOut(u)
			}
			return printYAML(cmd.OutOrStdout(), out)
		},
	}

	var password, role string
	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.backends.Users.Create(args[0], password, role)
			if err != nil {
				return err
			}
			log.WithField("username", u.Username).Info("created user")
			return printYAML(cmd.OutOrStdout(), newUserOut(*u))
		},
	}
	createCmd.Flags().StringVarP(&password, "password", "p", "", "the password of the new user")
	createCmd.Flags().StringVarP(&role, "role", "r", string(model.RoleUser), "the role of the new user (user or admin)")
	_ = createCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(listCmd, createCmd)
	return usersCmd
}

type articleOut struct {
	ID        uint      `yaml:"id"`
	Title     string    `yaml:"title"`
	Tags      []string  `yaml:"tags,flow"`
	Owner     string    `yaml:"owner"`
	Summary   bool      `yaml:"summarized"`
	CreatedAt time.Time `yaml:"created_at"`
}

type articlePageOut struct {
	Page       int          `yaml:"page"`
	TotalPages int          `yaml:"total_pages"`
	Total      int64        `yaml:"total"`
	Articles   []articleOut `yaml:"articles"`
}

func (c *cli) articlesCmd() *cobra.Command {
	articlesCmd := &cobra.Command{
		Use:   "articles",
		Short: "Inspect articles",
	}

	var page, limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := articles.NewService(c.backends.Articles, summarizer.Mock{}, 0)
			res, err := service.List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			out := articlePageOut{
				Page:       res.Pagination.CurrentPage,
				TotalPages: res.Pagination.TotalPages,
				Total:      res.Pagination.TotalArticles,
				Articles:   make([]articleOut, len(res.Articles)),
			}
			for i, a := range res.Articles {
				out.Articles[i] = articleOut{
					ID:        a.ID,
					Title:     a.Title,
					Tags:      a.Tags,
					Owner:     a.OwnerUsername,
					Summary:   a.Summary != nil,
					CreatedAt: a.CreatedAt,
				}
			}
			return printYAML(cmd.OutOrStdout(), out)
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "the page to show")
	listCmd.Flags().IntVar(&limit, "limit", 5, "the number of articles per page")

	articlesCmd.AddCommand(listCmd)
	return articlesCmd
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
