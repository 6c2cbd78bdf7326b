package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/1F47E/geo-index-kdtree/pkg/geo"
	"github.com/1F47E/geo-index-kdtree/pkg/kdtree"
	"github.com/1F47E/geo-index-kdtree/pkg/logger"
	"github.com/1F47E/geo-index-kdtree/pkg/models"
)

type placeTree = kdtree.Tree[string, map[string]any]

var radiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "List places within a radius",
	Long:  `Load the dataset and list every place within --radius km of --lat/--lon.`,
	RunE:  runRadius,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the closest place within a radius",
	Long:  `Load the dataset and print the place closest to --lat/--lon, if one lies within --radius km.`,
	RunE:  runNearest,
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "List places inside a bounding box",
	Long:  `Load the dataset and list every place inside the box spanned by the two corners, bounds inclusive.`,
	RunE:  runBox,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show tree shape before and after rebalancing",
	Long:  `Load the dataset in file order, report size, height and balance, then rebalance and report again.`,
	RunE:  runStats,
}

var (
	queryLat     float64
	queryLon     float64
	searchRadius float64

	boxMinLat float64
	boxMinLon float64
	boxMaxLat float64
	boxMaxLon float64
)

func init() {
	radiusCmd.Flags().Float64Var(&queryLat, "lat", 0, "Latitude of the search center")
	radiusCmd.Flags().Float64Var(&queryLon, "lon", 0, "Longitude of the search center")
	radiusCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 10.0, "Search radius in km")

	nearestCmd.Flags().Float64Var(&queryLat, "lat", 0, "Latitude of the search center")
	nearestCmd.Flags().Float64Var(&queryLon, "lon", 0, "Longitude of the search center")
	nearestCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 10.0, "Search radius in km")

	boxCmd.Flags().Float64Var(&boxMinLat, "min-lat", 0, "Latitude of the lower corner")
	boxCmd.Flags().Float64Var(&boxMinLon, "min-lon", 0, "Longitude of the lower corner")
	boxCmd.Flags().Float64Var(&boxMaxLat, "max-lat", 0, "Latitude of the upper corner")
	boxCmd.Flags().Float64Var(&boxMaxLon, "max-lon", 0, "Longitude of the upper corner")

	for _, c := range []*cobra.Command{radiusCmd, nearestCmd} {
		_ = c.MarkFlagRequired("lat")
		_ = c.MarkFlagRequired("lon")
	}
	for _, name := range []string{"min-lat", "min-lon", "max-lat", "max-lon"} {
		_ = boxCmd.MarkFlagRequired(name)
	}
}

// loadTree builds a tree from the dataset at path. Places sharing a location
// with an earlier place are dropped by the tree and reported as warnings.
func loadTree(path string, balance bool) (*placeTree, error) {
	log := logger.L()
	start := time.Now()

	places, err := models.LoadPlaces(path)
	if err != nil {
		return nil, err
	}

	tree := kdtree.New[string, map[string]any]()
	for _, p := range places {
		rec, err := p.Record()
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
		if err := tree.Insert(rec); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", path, err)
		}
		if !tree.Contains(rec.ID()) {
			log.Warn("duplicate location dropped", "id", rec.ID(), "point", rec.Point().String())
		}
	}

	if balance {
		tree.Balance()
	}

	log.Info("dataset loaded",
		"file", path,
		"places", len(places),
		"indexed", tree.Size(),
		"height", tree.Height(),
		"balanced", tree.IsBalanced(),
		"elapsed", time.Since(start))
	return tree, nil
}

func runRadius(cmd *cobra.Command, args []string) error {
	center, err := geo.NewPoint(queryLat, queryLon)
	if err != nil {
		return fmt.Errorf("search center: %w", err)
	}
	tree, err := loadTree(datasetFile, balanceAfterLoad)
	if err != nil {
		return err
	}

	start := time.Now()
	records := tree.FindNearestNeighbors(center, searchRadius)
	logger.L().Debug("radius search", "center", center.String(), "radius_km", searchRadius, "results", len(records), "elapsed", time.Since(start))

	printTitle(fmt.Sprintf("Places within %.2f km of %s", searchRadius, center))
	printRecords(records, &center)
	return nil
}

func runNearest(cmd *cobra.Command, args []string) error {
	center, err := geo.NewPoint(queryLat, queryLon)
	if err != nil {
		return fmt.Errorf("search center: %w", err)
	}
	tree, err := loadTree(datasetFile, balanceAfterLoad)
	if err != nil {
		return err
	}

	res := tree.FindNearest(center, searchRadius)

	printTitle(fmt.Sprintf("Nearest place to %s", center))
	if !res.Found() {
		fmt.Println(infoStyle.Render(fmt.Sprintf("No place within %.2f km", searchRadius)))
		return nil
	}
	rows := [][2]string{
		{"ID", res.Record.ID()},
		{"Location", res.Record.Point().String()},
		{"Distance", fmt.Sprintf("%.3f km", res.Distance)},
	}
	if name := placeName(res.Record.Payload()); name != "" {
		rows = append(rows, [2]string{"Name", name})
	}
	printStats("Result", rows)
	return nil
}

func runBox(cmd *cobra.Command, args []string) error {
	box, err := geo.BoxFromCoords(boxMinLat, boxMinLon, boxMaxLat, boxMaxLon)
	if err != nil {
		return fmt.Errorf("bounding box: %w", err)
	}
	tree, err := loadTree(datasetFile, balanceAfterLoad)
	if err != nil {
		return err
	}

	records := tree.FindInRange(box)

	printTitle(fmt.Sprintf("Places inside %s", box))
	printRecords(records, nil)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	tree, err := loadTree(datasetFile, false)
	if err != nil {
		return err
	}

	printTitle("Tree statistics")
	printStats("As loaded", shapeRows(tree))

	start := time.Now()
	tree.Balance()
	elapsed := time.Since(start)

	printStats("After rebalancing", append(shapeRows(tree), [2]string{"Rebalance time", elapsed.String()}))
	return nil
}

func shapeRows(tree *placeTree) [][2]string {
	return [][2]string{
		{"Records", count(tree.Size())},
		{"Height", count(tree.Height())},
		{"Balanced", fmt.Sprint(tree.IsBalanced())},
	}
}
