package cli

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/supago-community/supago/storage"
)

func newLsCmd() *cobra.Command {
	var (
		limit  int64
		offset int64
		order  string
		desc   bool
	)
	cmd := &cobra.Command{
		Use:   "ls <bucket> [prefix]",
		Short: "List objects in a bucket",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			st, err := client.Storage(cmd.Context())
			if err != nil {
				return err
			}

			prefix := ""
			if len(args) == 2 {
				prefix = args[1]
			}
			req := storage.NewListRequest(prefix)
			if limit > 0 {
				req.Limit(limit)
			}
			if offset > 0 {
				req.Offset(offset)
			}
			if order != "" {
				dir := storage.SortAscending
				if desc {
					dir = storage.SortDescending
				}
				req.SortBy(order, dir)
			}

			objects, err := st.List(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, o := range objects {
				fmt.Fprintf(w, "%s\t%s\n", o.Name, o.UpdatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&limit, "limit", 0, "maximum number of entries")
	cmd.Flags().Int64Var(&offset, "offset", 0, "entries to skip")
	cmd.Flags().StringVar(&order, "order", "", "column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func newGetCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <bucket> <path>",
		Short: "Download an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			st, err := client.Storage(cmd.Context())
			if err != nil {
				return err
			}
			data, err := st.Download(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newPutCmd() *cobra.Command {
	var (
		contentType string
		upsert      bool
	)
	cmd := &cobra.Command{
		Use:   "put <bucket> <path> <file>",
		Short: "Upload a file as an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			st, err := client.Storage(cmd.Context())
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[2])
			if err != nil {
				return err
			}
			ct := contentType
			if ct == "" {
				ct = mime.TypeByExtension(filepath.Ext(args[2]))
			}
			if ct == "" {
				ct = http.DetectContentType(data)
			}
			id, err := st.Upload(cmd.Context(), args[0], args[1], data,
				&storage.FileOptions{ContentType: ct, Upsert: upsert})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", id.Key)
			return nil
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "MIME type (default: guessed from the file)")
	cmd.Flags().BoolVar(&upsert, "upsert", false, "overwrite an existing object")
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <bucket> <path>",
		Short: "Delete an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			st, err := client.Storage(cmd.Context())
			if err != nil {
				return err
			}
			return st.Delete(cmd.Context(), args[0], args[1])
		},
	}
}

func newBucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "List buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			st, err := client.Storage(cmd.Context())
			if err != nil {
				return err
			}
			buckets, err := st.ListBuckets(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, b := range buckets {
				visibility := "private"
				if b.Public {
					visibility = "public"
				}
				fmt.Fprintf(w, "%s\t%s\n", b.Name, visibility)
			}
			return w.Flush()
		},
	}
}
