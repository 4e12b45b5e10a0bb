// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

type (
	ListRegisterRequest  = listRegisterRequest
	ListRegisterResponse = listRegisterResponse
	ListsResponse        = listsResponse
	ListResponse         = listResponse
	ListRootPutRequest   = listRootPutRequest
	ListRootPutResponse  = listRootPutResponse
	ClaimRequest         = claimRequest
	ClaimStatusResponse  = claimStatusResponse
)
