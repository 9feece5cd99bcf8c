// Copyright 2026 The LUCI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vision shows how to label images and read their text with the Cloud
// Vision API.
//
// Images are given as local paths or gs:// URIs.
package vision

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/luci/common/errors"
)

// MaxResults caps the number of labels returned per image.
const MaxResults = 10

// LoadImage reads a local image or references a gs:// one.
func LoadImage(path string) (*visionpb.Image, error) {
	if strings.HasPrefix(path, "gs://") {
		return &visionpb.Image{Source: &visionpb.ImageSource{ImageUri: path}}, nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "reading image").Err()
	}
	return &visionpb.Image{Content: blob}, nil
}

// loadImages loads all paths concurrently.
func loadImages(ctx context.Context, paths []string) ([]*visionpb.Image, error) {
	images := make([]*visionpb.Image, len(paths))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, p := range paths {
		eg.Go(func() (err error) {
			images[i], err = LoadImage(p)
			return errors.Annotate(err, "loading %s", p).Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// annotate runs one feature over the images and returns the responses in the
// same order, failing if any image failed.
func annotate(ctx context.Context, client *vision.ImageAnnotatorClient, images []*visionpb.Image, feature visionpb.Feature_Type) ([]*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateImagesRequest{}
	for _, img := range images {
		req.Requests = append(req.Requests, &visionpb.AnnotateImageRequest{
			Image:    img,
			Features: []*visionpb.Feature{{Type: feature, MaxResults: MaxResults}},
		})
	}
	resp, err := client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, errors.Annotate(err, "annotating images").Err()
	}
	if len(resp.Responses) != len(images) {
		return nil, errors.Reason("got %d responses for %d images", len(resp.Responses), len(images)).Err()
	}
	for i, r := range resp.Responses {
		if e := r.GetError(); e != nil {
			return nil, errors.Reason("image #%d: %s", i, e.GetMessage()).Err()
		}
	}
	return resp.Responses, nil
}

func printLabels(w io.Writer, r *visionpb.AnnotateImageResponse) {
	if len(r.LabelAnnotations) == 0 {
		fmt.Fprintln(w, "No labels found.")
		return
	}
	fmt.Fprintln(w, "Labels:")
	for _, l := range r.LabelAnnotations {
		fmt.Fprintf(w, "%s (%.2f)\n", l.Description, l.Score)
	}
}

// DetectLabels prints the labels of an image.
func DetectLabels(ctx context.Context, w io.Writer, client *vision.ImageAnnotatorClient, path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	resp, err := annotate(ctx, client, []*visionpb.Image{img}, visionpb.Feature_LABEL_DETECTION)
	if err != nil {
		return err
	}
	printLabels(w, resp[0])
	return nil
}

// DetectLabelsBatch labels many images with a single request.
func DetectLabelsBatch(ctx context.Context, w io.Writer, client *vision.ImageAnnotatorClient, paths []string) error {
	images, err := loadImages(ctx, paths)
	if err != nil {
		return err
	}
	resp, err := annotate(ctx, client, images, visionpb.Feature_LABEL_DETECTION)
	if err != nil {
		return err
	}
	for i, r := range resp {
		fmt.Fprintf(w, "%s:\n", paths[i])
		printLabels(w, r)
	}
	return nil
}

// DetectText prints the text found in an image.
func DetectText(ctx context.Context, w io.Writer, client *vision.ImageAnnotatorClient, path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	resp, err := annotate(ctx, client, []*visionpb.Image{img}, visionpb.Feature_TEXT_DETECTION)
	if err != nil {
		return err
	}
	// The first annotation is the whole text, the rest are single words.
	texts := resp[0].TextAnnotations
	if len(texts) == 0 {
		fmt.Fprintln(w, "No text found.")
		return nil
	}
	fmt.Fprintln(w, "Text:")
	fmt.Fprintf(w, "%q\n", texts[0].Description)
	return nil
}
