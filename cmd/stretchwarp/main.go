// stretchwarp warps point streams through an anchor set and manages a local
// library of stored anchor sets.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"stretchwarp/anchorfile"
	"stretchwarp/fieldstore"
	"stretchwarp/stretch"
	"stretchwarp/vmath/vec3"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.opencensus.io/stats/view"
	"golang.org/x/xerrors"
)

var cmdRoot = &cobra.Command{
	Use:           "stretchwarp",
	Short:         "Warp points through a set of origin/target anchors.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog's flags ride along on the cobra flag set; mark the standard
		// set parsed so glog doesn't complain.
		flag.CommandLine.Parse([]string{})
	},
}

var (
	dbDir       string
	anchorsFile string
	setName     string
)

func init() {
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmdRoot.PersistentFlags().StringVar(&dbDir, "db", "", "Directory of the stored anchor set library.")
	cmdRoot.PersistentFlags().StringVar(&anchorsFile, "anchors", "", "YAML anchor file.")
	cmdRoot.PersistentFlags().StringVar(&setName, "name", "", "Name of an anchor set in the --db library.")
}

// loadSet reads the anchor set named by --anchors, or else by --db and
// --name.
func loadSet() (*stretch.AnchorSet, error) {
	switch {
	case anchorsFile != "":
		return anchorfile.LoadFile(anchorsFile)
	case dbDir != "" && setName != "":
		store, err := fieldstore.Open(dbDir)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Get(setName)
	}
	return nil, xerrors.New("need --anchors, or --db and --name")
}

var cmdWarp = &cobra.Command{
	Use:   "warp",
	Short: "Read points from stdin and write their warped positions to stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if warpStats {
			if err := stretch.RegisterMetrics(); err != nil {
				return xerrors.Errorf("while registering metrics: %w", err)
			}
			defer func() {
				reportStats()
				stretch.UnregisterMetrics()
			}()
		}

		set, err := loadSet()
		if err != nil {
			return xerrors.Errorf("while loading anchor set: %w", err)
		}
		glog.Infof("Loaded %d anchors (exponents %v, %v)", set.AnchorCount(), set.WeightingExponent1(), set.WeightingExponent2())

		points, err := readPoints(cmd.InOrStdin())
		if err != nil {
			return xerrors.Errorf("while reading points: %w", err)
		}

		opts := []stretch.BatchOption{stretch.WithChunkSize(warpChunkSize)}
		if warpWorkers > 0 {
			opts = append(opts, stretch.WithWorkers(warpWorkers))
		}
		warped, err := stretch.TransformAll(ctx, set, points, opts...)
		if err != nil {
			return err
		}
		glog.Infof("Warped %d points", len(warped))

		return writePoints(cmd.OutOrStdout(), warped)
	},
}

var (
	warpWorkers   int
	warpChunkSize int
	warpStats     bool
)

func init() {
	cmdWarp.Flags().IntVar(&warpWorkers, "workers", 0, "Concurrent warp workers; 0 means GOMAXPROCS.")
	cmdWarp.Flags().IntVar(&warpChunkSize, "chunk-size", 1024, "Points per worker task.")
	cmdWarp.Flags().BoolVar(&warpStats, "stats", false, "Log recompute and warp counters when done.")
}

func reportStats() {
	for _, v := range []*view.View{stretch.RecomputeCountView, stretch.WarpedPointsView} {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			glog.Errorf("Error while retrieving view %q: %v", v.Name, err)
			continue
		}
		for _, r := range rows {
			glog.Infof("%s %v: %v", v.Name, r.Tags, r.Data)
		}
	}
}

var cmdFind = &cobra.Command{
	Use:   "find [flags] [--] X Y [Z]",
	Short: "Print the index of the latest anchor near a point, or -1.",
	Long: `Print the index of the latest anchor near a point, or -1.

Put -- before the coordinates when any of them is negative, so it isn't read
as a flag:

  stretchwarp find --anchors rig.yaml --tolerance 0.1 -- -1 2`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := parseRole(findRole)
		if err != nil {
			return err
		}

		p, err := parsePoint(args)
		if err != nil {
			return xerrors.Errorf("while parsing point: %w", err)
		}

		set, err := loadSet()
		if err != nil {
			return xerrors.Errorf("while loading anchor set: %w", err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), set.FindAnchorNear(p, findTolerance, role))
		return err
	},
}

var (
	findTolerance float64
	findRole      string
)

func init() {
	cmdFind.Flags().Float64Var(&findTolerance, "tolerance", 0, "Search radius around the point.")
	cmdFind.Flags().StringVar(&findRole, "role", "either", "Which anchor position to match: origin, target or either.")
}

func parseRole(s string) (stretch.Role, error) {
	for _, r := range []stretch.Role{stretch.RoleOrigin, stretch.RoleTarget, stretch.RoleEither} {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, xerrors.Errorf("unknown role %q", s)
}

var cmdStore = &cobra.Command{
	Use:   "store [command]",
	Short: "Manage the stored anchor set library named by --db.",
}

// withStore opens the --db library for the duration of fn.
func withStore(fn func(store *fieldstore.Store) error) error {
	if dbDir == "" {
		return xerrors.New("--db is required")
	}
	store, err := fieldstore.Open(dbDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			glog.Errorf("Error while closing %v: %v", store, err)
		}
	}()
	return fn(store)
}

var cmdStorePut = &cobra.Command{
	Use:   "put",
	Short: "Store the --anchors file under --name.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if anchorsFile == "" || setName == "" {
			return xerrors.New("--anchors and --name are required")
		}
		set, err := anchorfile.LoadFile(anchorsFile)
		if err != nil {
			return err
		}
		return withStore(func(store *fieldstore.Store) error {
			if err := store.Put(setName, set); err != nil {
				return err
			}
			glog.Infof("Stored %d anchors as %q", set.AnchorCount(), setName)
			return nil
		})
	},
}

var cmdStoreGet = &cobra.Command{
	Use:   "get",
	Short: "Print the anchor set stored under --name as YAML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *fieldstore.Store) error {
			set, err := store.Get(setName)
			if err != nil {
				return err
			}
			return anchorfile.Save(cmd.OutOrStdout(), set)
		})
	},
}

var cmdStoreList = &cobra.Command{
	Use:   "list",
	Short: "List stored anchor set names.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *fieldstore.Store) error {
			names, err := store.List()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		})
	},
}

var cmdStoreDelete = &cobra.Command{
	Use:   "delete",
	Short: "Delete the anchor set stored under --name.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *fieldstore.Store) error {
			return store.Delete(setName)
		})
	},
}

func init() {
	cmdRoot.AddCommand(cmdWarp, cmdFind, cmdStore)
	cmdStore.AddCommand(cmdStorePut, cmdStoreGet, cmdStoreList, cmdStoreDelete)
}

// readPoints parses one point per line.  Components are separated by
// whitespace or commas; blank lines and lines starting with # are skipped.
func readPoints(r io.Reader) ([]vec3.T, error) {
	points := []vec3.T{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		p, err := parsePoint(fields)
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func parsePoint(fields []string) (vec3.T, error) {
	c := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec3.T{}, xerrors.Errorf("component %d: %w", i, err)
		}
		c[i] = v
	}
	return vec3.FromSlice(c)
}

func writePoints(w io.Writer, points []vec3.T) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		fmt.Fprintf(bw, "%s %s %s\n",
			strconv.FormatFloat(p[0], 'g', -1, 64),
			strconv.FormatFloat(p[1], 'g', -1, 64),
			strconv.FormatFloat(p[2], 'g', -1, 64))
	}
	return bw.Flush()
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := cmdRoot.Execute(); err != nil {
		glog.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "stretchwarp: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}
